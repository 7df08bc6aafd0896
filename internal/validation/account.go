// Package validation holds input rules for accounts and posts.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"marketplace/internal/models"
)

const (
	MinNameLength     = 2
	MaxNameLength     = 120
	MinPasswordLength = 6
	// bcrypt ignores everything past 72 bytes
	MaxPasswordBytes = 72
	MaxBioLength     = 500
)

// ValidateName checks a display name.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLength {
		return fmt.Errorf("name must be at least %d characters", MinNameLength)
	}
	if n > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare address with a dotted domain.
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email is not a valid address")
	}
	at := strings.LastIndex(email, "@")
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		return errors.New("email is not a valid address")
	}
	return nil
}

// ValidatePassword enforces length bounds only.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}

// ValidateBio bounds the free-text bio.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	return nil
}

// ValidatePictureURL accepts an empty value or an absolute http(s) URL.
func ValidatePictureURL(raw string) error {
	if raw == "" {
		return nil
	}
	return validateHTTPURL("picture", raw)
}

// ValidateContact checks the optional website of a contact card.
func ValidateContact(c models.Contact) error {
	if c.Website != "" {
		if err := validateHTTPURL("website", c.Website); err != nil {
			return err
		}
	}
	for field, v := range map[string]string{"phone": c.Phone, "whatsapp": c.Whatsapp} {
		if len(v) > 32 {
			return fmt.Errorf("%s must be at most 32 characters", field)
		}
	}
	if utf8.RuneCountInString(c.Address) > 200 {
		return errors.New("address must be at most 200 characters")
	}
	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL", field)
	}
	return nil
}
