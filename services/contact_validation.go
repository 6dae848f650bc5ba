package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

// Permissive phone pattern: digits plus the separators people actually type.
var phonePattern = regexp.MustCompile(`^[+0-9\s\-(). ]{7,20}$`)

// FieldError identifies the first form field that failed validation,
// with a message suitable for inline display.
type FieldError struct {
	Field   string
	Message string
}

// ContactValidator normalizes and validates contact submissions independent
// of the transport that delivered them.
type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() *ContactValidator {
	return &ContactValidator{validate: validator.New()}
}

// Validate trims and normalizes the submission, then checks each field in
// form order. The first failing field wins; later fields are not reported.
// On success the returned submission carries the normalized values.
func (v *ContactValidator) Validate(sub types.ContactSubmission) (types.ContactSubmission, *FieldError) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Company = strings.TrimSpace(sub.Company)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Message = strings.TrimSpace(sub.Message)

	// Bounds count characters, not bytes, so multibyte names and messages
	// are measured the way the form presents them to the user.
	if utf8.RuneCountInString(sub.Name) < 2 {
		return sub, &FieldError{Field: "name", Message: "Name must be at least 2 characters."}
	}
	if utf8.RuneCountInString(sub.Name) > 100 {
		return sub, &FieldError{Field: "name", Message: "Name must be under 100 characters."}
	}

	if utf8.RuneCountInString(sub.Company) > 150 {
		return sub, &FieldError{Field: "company", Message: "Company name must be under 150 characters."}
	}

	if err := v.validate.Var(sub.Email, "required,email"); err != nil {
		return sub, &FieldError{Field: "email", Message: "Please enter a valid email address."}
	}
	if utf8.RuneCountInString(sub.Email) > 254 {
		return sub, &FieldError{Field: "email", Message: "Email address is too long."}
	}

	if sub.Phone != "" && !phonePattern.MatchString(sub.Phone) {
		return sub, &FieldError{Field: "phone", Message: "Please enter a valid phone number."}
	}

	if utf8.RuneCountInString(sub.Message) < 10 {
		return sub, &FieldError{Field: "message", Message: "Message must be at least 10 characters."}
	}
	if utf8.RuneCountInString(sub.Message) > 2000 {
		return sub, &FieldError{Field: "message", Message: "Message must be under 2000 characters."}
	}

	// Secondary honeypot check. The pipeline short-circuits non-empty
	// honeypots long before validation, so reaching this means the service
	// was called directly.
	if sub.Website != "" {
		return sub, &FieldError{Field: "website", Message: "Please check your input and try again."}
	}

	return sub, nil
}
