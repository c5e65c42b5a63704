package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func SetGlobalValidator(v *validator.Validate) {
	if v == nil {
		panic("Validator instance provided to SetGlobalValidator cannot be nil.")
	}
	validate = v
}

func GetGlobalValidator() *validator.Validate {
	if validate == nil {
		panic("Global validator has not been initialized. Call SetGlobalValidator() at application startup.")
	}
	return validate
}

// FormatValidationErrors converts validator errors into a field -> messages map
// suitable for the error response envelope.
func FormatValidationErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_error_": {err.Error()}}
	}

	formattedErrors := make(map[string][]string)
	for _, fieldError := range validationErrors {
		fieldName := toSnakeCase(fieldError.Field())
		formattedErrors[fieldName] = append(formattedErrors[fieldName], getErrorMessage(fieldError))
	}

	return formattedErrors
}

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([A-Z])([A-Z][a-z]*)")

// toSnakeCase converts PascalCase/CamelCase field names to snake_case.
func toSnakeCase(s string) string {
	snake := matchFirstCap.ReplaceAllString(s, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.Trim(strings.ToLower(snake), "_")
}

// getErrorMessage provides more readable error messages based on validation tag
func getErrorMessage(err validator.FieldError) string {
	fieldName := toSnakeCase(err.Field())
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldName)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldName)
	case "min":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long", fieldName, param)
		}
		return fmt.Sprintf("%s must be at least %s", fieldName, param)
	case "max":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters long", fieldName, param)
		}
		return fmt.Sprintf("%s must be at most %s", fieldName, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fieldName, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fieldName, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fieldName, param)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date (%s)", fieldName, param)
	default:
		return fmt.Sprintf("Validation failed for %s on tag %s", fieldName, err.Tag())
	}
}
