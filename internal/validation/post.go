package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"marketplace/internal/models"
)

const (
	MinContentLength = 10
	MaxContentLength = 5000
	MaxPostName      = 200
	MaxLocation      = 200
	MaxEndDays       = 365
)

// ValidatePostKind accepts product or service.
func ValidatePostKind(kind models.PostKind) error {
	if !kind.Valid() {
		return fmt.Errorf("kind must be %q or %q", models.PostKindProduct, models.PostKindService)
	}
	return nil
}

// ValidatePostName requires a non-blank name.
func ValidatePostName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return errors.New("name is required")
	}
	if n > MaxPostName {
		return fmt.Errorf("name must be at most %d characters", MaxPostName)
	}
	return nil
}

// ValidateContent bounds the post body.
func ValidateContent(content string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < MinContentLength {
		return fmt.Errorf("content must be at least %d characters", MinContentLength)
	}
	if n > MaxContentLength {
		return fmt.Errorf("content must be at most %d characters", MaxContentLength)
	}
	return nil
}

// ValidateLocation requires a non-blank location.
func ValidateLocation(location string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(location))
	if n == 0 {
		return errors.New("location is required")
	}
	if n > MaxLocation {
		return fmt.Errorf("location must be at most %d characters", MaxLocation)
	}
	return nil
}

// ValidatePrice rejects negative amounts; prices are in minor units.
func ValidatePrice(price int64) error {
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// ValidateEndDays bounds how long a listing stays open.
func ValidateEndDays(days int) error {
	if days < 1 || days > MaxEndDays {
		return fmt.Errorf("end must be between 1 and %d days", MaxEndDays)
	}
	return nil
}
