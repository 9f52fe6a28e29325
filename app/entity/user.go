package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID                      string
	Email                   string
	Name                    string
	Country                 string
	VerificationCode        sql.NullString
	VerificationCodeExpires sql.NullTime
	EmailVerified           bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
