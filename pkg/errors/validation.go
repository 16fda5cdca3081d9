package errors

import (
	"strings"
	"unicode"
)

// ValidateEmail performs a light-weight sanity check on an email address.
// It is intentionally permissive: the registry is local-only and the goal is
// catching obvious typos, not RFC 5322 compliance.
func ValidateEmail(email string) error {
	if email == "" {
		return New(ErrCodeInvalidInput, "email cannot be empty")
	}
	if len(email) > 254 {
		return New(ErrCodeInvalidInput, "email too long (max 254 characters)")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return New(ErrCodeInvalidInput, "email must contain a local part and a domain")
	}
	for _, r := range email {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "email contains invalid characters")
		}
	}
	return nil
}

// ValidateCountryCode validates a cca3 country code before it is used in a
// request path or a storage key.
func ValidateCountryCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "country code cannot be empty")
	}
	if len(code) != 3 {
		return New(ErrCodeInvalidInput, "country code must be three letters (cca3), got %q", code)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return New(ErrCodeInvalidInput, "country code contains invalid characters: %q", code)
		}
	}
	return nil
}

// ValidatePassword checks a password for registration.
// Plain-text storage is a documented limitation of the local demo registry,
// so the only requirement is that the password is non-empty.
func ValidatePassword(password string) error {
	if password == "" {
		return New(ErrCodeInvalidInput, "password cannot be empty")
	}
	return nil
}
