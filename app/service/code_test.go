package service

import (
	"strconv"
	"testing"
)

func TestGenerateVerificationCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("expected numeric code, got %q", code)
		}
		if n < minVerificationCode || n > maxVerificationCode {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestVerificationCodeHashing(t *testing.T) {
	hash, err := hashVerificationCode("482913")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "482913" {
		t.Fatalf("code must not be stored in clear text")
	}
	if !verificationCodeMatches(hash, "482913") {
		t.Fatalf("expected code to match its hash")
	}
	if verificationCodeMatches(hash, "482914") {
		t.Fatalf("expected different code not to match")
	}
}

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Joe's Pizza":          "joes-pizza",
		"  Spicy   Noodle Bar ": "spicy-noodle-bar",
		"Café_Del--Mar":        "caf-del-mar",
		"!!!":                  "restaurant",
		"-Taco-Stand-":         "taco-stand",
	}
	for name, want := range cases {
		if got := GenerateSlug(name); got != want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", name, got, want)
		}
	}
}
