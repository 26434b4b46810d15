package domain

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email address is valid. Empty is allowed: email
// is optional on players and admins.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateTitle checks the unique game title field.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > 255 {
		return fmt.Errorf("title exceeds 255 characters")
	}
	return nil
}

// ValidateName checks a required name field (achievements, items).
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 255 {
		return fmt.Errorf("name exceeds 255 characters")
	}
	return nil
}

// ValidateNickname checks the unique nickname field on players and admins.
func ValidateNickname(nickname string) error {
	if nickname == "" {
		return fmt.Errorf("nickname is required")
	}
	if len(nickname) > 64 {
		return fmt.Errorf("nickname exceeds 64 characters")
	}
	return nil
}

// ValidateProgress checks level and experience values.
func ValidateProgress(level, experience int) error {
	if level < 0 {
		return fmt.Errorf("level must not be negative, got %d", level)
	}
	if experience < 0 {
		return fmt.Errorf("experience must not be negative, got %d", experience)
	}
	return nil
}
