package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation rules for extractor DTOs
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("res_prefix", validateResPrefix)
}

// validateResPrefix checks that a walk prefix addresses the logical
// resource namespace
func validateResPrefix(fl validator.FieldLevel) bool {
	return strings.HasPrefix(fl.Field().String(), "res:/")
}
