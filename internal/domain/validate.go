package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidationError reports a rejected input field before it reaches the
// repository.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var reDateOfBirth = regexp.MustCompile(`^\d{4}[-/]?\d{1,2}[-/]?\d{1,2}$`)

// Registration is the raw sign-up input. Password is plaintext here and must
// be hashed before the User is built.
type Registration struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Validate checks the sign-up rules: email, password strength and date of
// birth format.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return &ValidationError{Field: "username", Reason: "Username is required."}
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	return ValidateDateOfBirth(r.DateOfBirth)
}

// ValidateEmail only requires an '@'.
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Reason: "Email must contain an '@' sign."}
	}
	return nil
}

// ValidatePassword requires at least 5 characters with an upper-case letter,
// a lower-case letter and a digit.
func ValidatePassword(password string) error {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit || len([]rune(password)) < 5 {
		return &ValidationError{
			Field:  "password",
			Reason: "Password must contain at least one uppercase letter, one lowercase letter, one number, and be at least 5 characters long.",
		}
	}
	return nil
}

// ValidateDateOfBirth accepts YYYY-MM-DD and YYYY/MM/DD style strings.
func ValidateDateOfBirth(dob string) error {
	if !reDateOfBirth.MatchString(dob) {
		return &ValidationError{Field: "dateOfBirth", Reason: "Date of Birth must be in the format YYYY-MM-DD or YYYY/MM/DD."}
	}
	return nil
}

// ValidateWeight rejects a blank weight entry.
func ValidateWeight(weight string) error {
	if strings.TrimSpace(weight) == "" {
		return &ValidationError{Field: "weight", Reason: "Please enter a valid weight and date."}
	}
	return nil
}
