package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

const VerificationSubject = "Your verification code"

var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Verify your email</h2>
  <p>Use the code below to sign in to your restaurant dashboard:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">{{.Code}}</p>
  <p>This code expires in {{.ExpiresInMinutes}} minutes. If you did not request it, you can ignore this email.</p>
</body>
</html>`))

// VerificationMailer renders and delivers verification code emails.
type VerificationMailer struct {
	sender         Sender
	expiresMinutes int
}

func NewVerificationMailer(sender Sender, expiresMinutes int) *VerificationMailer {
	return &VerificationMailer{sender: sender, expiresMinutes: expiresMinutes}
}

func (m *VerificationMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	body, err := RenderVerificationEmail(code, m.expiresMinutes)
	if err != nil {
		return err
	}
	if err = m.sender.Send(ctx, email, VerificationSubject, body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func RenderVerificationEmail(code string, expiresMinutes int) (string, error) {
	var buf bytes.Buffer
	err := verificationTemplate.Execute(&buf, struct {
		Code             string
		ExpiresInMinutes int
	}{
		Code:             code,
		ExpiresInMinutes: expiresMinutes,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
