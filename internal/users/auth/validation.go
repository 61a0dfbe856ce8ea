// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import (
	"fmt"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/validate"
)

const messageTaken = "Has already been taken"

var (
	emailTaken    = apperr.FieldError{Field: FieldEmail, Message: messageTaken}
	usernameTaken = apperr.FieldError{Field: FieldUsername, Message: messageTaken}
)

// validateSignup applies the format rules of a new account. Every failing
// field is reported; nothing stops at the first error.
func validateSignup(input RegisterInput) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)

	if input.Email == "" {
		validator.Required(FieldEmail, input.Email)
	} else {
		validator.Email(FieldEmail, input.Email)
	}

	if input.Username != "" {
		validator.MinLen(FieldUsername, input.Username, 2).
			MaxLen(FieldUsername, input.Username, 40).
			Slug(FieldUsername, input.Username)
	}

	validatePassword(validator, FieldPassword, input.Password).
		Confirmation(FieldPassword, input.Password, input.PasswordConfirmation)

	return validator
}

// validatePassword checks presence and length of a new password.
func validatePassword(validator *validate.Validator, field, password string) *validate.Validator {
	if password == "" {
		return validator.Required(field, password)
	}
	return validator.MinLen(field, password, MinPasswordLength).
		Custom(field, len(password) > MaxPasswordBytes, fmt.Sprintf("Maximum %d bytes", MaxPasswordBytes))
}
