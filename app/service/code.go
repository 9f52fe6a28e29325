package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	minVerificationCode = 100000
	maxVerificationCode = 999999
)

// CodeGenerator produces a fresh verification code.
type CodeGenerator func() (string, error)

// GenerateVerificationCode returns a uniformly random code in [100000, 999999].
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxVerificationCode-minVerificationCode+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+minVerificationCode), nil
}

func hashVerificationCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func verificationCodeMatches(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
