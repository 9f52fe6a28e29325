package types

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const VerificationCodeLength = 6

type RequestCodeRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
}

type RequestCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyCodeResponse struct {
	Success      bool     `json:"success"`
	SessionToken string    `json:"sessionToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         *Profile  `json:"user"`
}

// Profile is the public view of an account. It never carries the verification code.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Country       string `json:"country"`
	EmailVerified bool   `json:"emailVerified"`
}

type SessionResponse struct {
	User *Profile `json:"user"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type ValidateSessionRequest struct {
	Token string `json:"token"`
}

type ValidateSessionResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

func NewRequestCodeRequestFromContext(ctx echo.Context) (*RequestCodeRequest, error) {
	var body RequestCodeRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *RequestCodeRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return errors.New("email is required")
	}
	if !isEmail(r.Email) {
		return errors.New("email is invalid")
	}

	return nil
}

// IsSignup reports whether the request carries the profile fields needed to create an account.
func (r *RequestCodeRequest) IsSignup() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Country) != ""
}

func NewVerifyCodeRequestFromContext(ctx echo.Context) (*VerifyCodeRequest, error) {
	var body VerifyCodeRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *VerifyCodeRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || strings.TrimSpace(r.Code) == "" {
		return errors.New("email and code are required")
	}
	if !isEmail(r.Email) {
		return errors.New("email is invalid")
	}
	if len(strings.TrimSpace(r.Code)) != VerificationCodeLength {
		return errors.New("code must be 6 characters long")
	}

	return nil
}

func (r *ValidateSessionRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("token is required")
	}

	return nil
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	return addr.Address == value
}
