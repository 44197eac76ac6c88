package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var imdbIDRgx = regexp.MustCompile(`^tt\d{7,8}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("imdb_id", validateImdbID)

	return validator
}

func validateImdbID(fl validator.FieldLevel) bool {
	return imdbIDRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", err.Param())
	case "numeric":
		return "must contain only digits"
	case "imdb_id":
		return "must be a valid IMDb ID, like tt0133093"
	default:
		return "is invalid"
	}
}
