package dto

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// safe_text admits plain prose only: letters, digits, whitespace and basic
// punctuation. Markup and injection attempts fail the allow-list.
var safeTextRegex = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?'"()-]*$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("safe_text", validateSafeText)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateSafeText(fl validator.FieldLevel) bool {
	return safeTextRegex.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors carries validation failures collected outside the struct-tag
// pass, such as the custom date-range check. All failures for a request are
// reported together.
type FieldErrors []ValidationError

func (e FieldErrors) Error() string {
	messages := make([]string, len(e))
	for i, fieldErr := range e {
		messages[i] = fieldErr.Message
	}
	return strings.Join(messages, "; ")
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if fieldErrors, ok := err.(FieldErrors); ok {
		return fieldErrors
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "safe_text":
				message = fieldError.Field() + " contains disallowed characters"
			case "datetime":
				message = fieldError.Field() + " must be a valid date in YYYY-MM-DD format"
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}
