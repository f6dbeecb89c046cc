package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the dashboard's validation rule for admin
// accounts.
const MinPasswordLength = 6

// ErrPasswordTooShort rejects passwords below the minimum length before any
// hashing work happens.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// HashPassword produces a bcrypt hash for storage. Plaintext passwords are
// never written to the document store.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
