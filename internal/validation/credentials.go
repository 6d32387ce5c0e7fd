package validation

import (
	"regexp"

	"assignportal/internal/errors"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 20
	passwordMinLength = 8
	passwordMaxLength = 50
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]+$`)
)

// ValidateUsername checks length and charset constraints on a username.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLength || len(username) > usernameMaxLength {
		return errors.ErrInvalidUsername
	}
	if !usernamePattern.MatchString(username) {
		return errors.ErrInvalidUsername
	}
	return nil
}

// ValidatePassword checks length, charset, and complexity constraints on a
// password: at least one lowercase letter, one uppercase letter, one digit,
// and one of @$!%*?&.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		return errors.ErrInvalidPassword
	}
	if !passwordCharset.MatchString(password) {
		return errors.ErrInvalidPassword
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			// charset check above guarantees this is one of @$!%*?&
			hasSpecial = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return errors.ErrInvalidPassword
	}
	return nil
}
