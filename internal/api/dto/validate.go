package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

var validate = validator.New()

// Validate runs struct tag validation and converts failures into the
// standard VALIDATION_FAILED error shape, naming the first failing field.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		details := map[string]any{}
		for _, fieldErr := range fieldErrs {
			details[snakeCase(fieldErr.Field())] = fieldErr.Tag()
		}
		return apperrors.NewValidationError("request validation failed", details)
	}
	return apperrors.NewValidationError("request validation failed", nil)
}

func snakeCase(name string) string {
	out := make([]rune, 0, len(name)+4)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
