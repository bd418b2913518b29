package handler

import (
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single failed field in a request body.
type ValidationError struct {
	FailedField string      `json:"field"`
	Tag         string      `json:"tag"`
	Value       interface{} `json:"value"`
}

var validate = validator.New()

// Validate performs validation on the provided data and returns a slice of
// ValidationError, empty when the data is valid.
func Validate(data interface{}) []ValidationError {
	var validationErrors []ValidationError

	errs := validate.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) { //nolint:errorlint,errcheck // ok here
			validationErrors = append(validationErrors, ValidationError{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}

	return validationErrors
}
