package security

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPasswordAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("Hash must not equal the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Expected bcrypt format, got %q", hash)
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("Expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("Expected non-matching password to fail")
	}
}

func TestHashPasswordRejectsShortPasswords(t *testing.T) {
	_, err := HashPassword("tiny")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}
}

func TestHashPasswordSalts(t *testing.T) {
	a, _ := HashPassword("s3cret-pass")
	b, _ := HashPassword("s3cret-pass")
	if a == b {
		t.Error("Two hashes of the same password must differ")
	}
}

func TestCheckPasswordRejectsGarbageHash(t *testing.T) {
	if CheckPassword("not-a-hash", "s3cret-pass") {
		t.Error("Garbage hash must never verify")
	}
}
