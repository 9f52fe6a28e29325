package mailer

import (
	"context"
	"strings"

	"github.com/vibast-solutions/ms-go-menu/config"

	"github.com/sirupsen/logrus"
)

const defaultFrom = "Menu <onboarding@resend.dev>"

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// New picks a transport from the mail settings: Resend when an API key is set,
// SMTP when a host is set, otherwise a sender that only logs.
func New(cfg config.MailConfig) Sender {
	from := strings.TrimSpace(cfg.From)

	switch {
	case cfg.ResendAPIKey != "":
		if from == "" {
			from = defaultFrom
		}
		logrus.Info("Mail transport: resend")
		return NewResendSender(cfg.ResendAPIKey, from)
	case cfg.SMTPHost != "":
		if from == "" {
			from = cfg.SMTPUser
		}
		logrus.WithFields(logrus.Fields{
			"host": cfg.SMTPHost,
			"port": cfg.SMTPPort,
		}).Info("Mail transport: smtp")
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, from,
			WithSMTPTimeout(cfg.SMTPTimeout),
		)
	default:
		logrus.Warn("No mail transport configured, emails will only be logged")
		return NewLogSender()
	}
}

// LogSender writes the outgoing message to the log instead of delivering it.
type LogSender struct {
	logger logrus.FieldLogger
}

func NewLogSender() *LogSender {
	return &LogSender{logger: logrus.StandardLogger()}
}

func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	s.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"bytes":   len(html),
	}).Info("Email not delivered: no transport configured")
	s.logger.WithField("to", to).Debug(html)
	return nil
}
