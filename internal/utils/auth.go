package utils

import (
	"fmt"
	"net/mail"

	"golang.org/x/crypto/bcrypt"

	"github.com/careersynapse/backend/internal/normalization"
)

// ValidateSignupInput enforces the signup rules: username at least 3
// characters, a parseable email, password at least 6 characters.
func ValidateSignupInput(username, email, password string) error {
	if len(normalization.TrimInputString(username)) < 3 {
		return fmt.Errorf("Username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(normalization.ParseInputString(email)); err != nil {
		return fmt.Errorf("Please enter a valid email")
	}
	if len(password) < 6 {
		return fmt.Errorf("Password must be at least 6 characters")
	}
	return nil
}

func ValidateLoginInput(username, password string) error {
	if normalization.TrimInputString(username) == "" {
		return fmt.Errorf("Username/Email is required")
	}
	if password == "" {
		return fmt.Errorf("Password is required")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("Failed to hash password")
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
