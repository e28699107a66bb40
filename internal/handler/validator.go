package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("difficulty", validateDifficulty)
	_ = v.RegisterValidation("ghname", validateGithubName)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lowercased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "difficulty":
			errs[field] = "Must be beginner, intermediate or advanced"
		case "ghname":
			errs[field] = "Invalid GitHub name"
		case "url":
			errs[field] = "Invalid URL"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte", "lte", "gt":
			errs[field] = "Out of range"
		case "excludesall":
			errs[field] = "Contains invalid characters"
		case "alphanum":
			errs[field] = "Must contain only letters and digits"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidDifficulties defines the supported difficulty levels
var ValidDifficulties = map[string]bool{
	domain.DifficultyBeginner:     true,
	domain.DifficultyIntermediate: true,
	domain.DifficultyAdvanced:     true,
}

// validateDifficulty accepts an empty value; pair with required when needed
func validateDifficulty(fl validator.FieldLevel) bool {
	d := fl.Field().String()
	if d == "" {
		return true
	}
	return ValidDifficulties[strings.ToLower(d)]
}

// validateGithubName accepts logins, owners and repository names
func validateGithubName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 100 {
		return name == ""
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
