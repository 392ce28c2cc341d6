package usecase

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"foodgram_backend/internal/shared/validation"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// checkPassword adds the password policy violations of pw to verr under field.
func checkPassword(verr *validation.Error, field, pw string) {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		verr.Addf(field, "This password is too short. It must contain at least %d characters.", MinPasswordLength)
	}
	numeric := pw != ""
	for _, r := range pw {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		verr.Add(field, "This password is entirely numeric.")
	}
}

// HashPassword returns the bcrypt hash stored for pw.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
