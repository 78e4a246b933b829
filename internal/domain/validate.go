package domain

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/evops/catalog/internal/errors"
)

var loginPattern = regexp.MustCompile(`^[a-z0-9_.\-]+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("nocontrol", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if unicode.IsControl(r) {
				return false
			}
		}
		return true
	})
	return v
}()

// checkVar runs a validator tag against a single value and converts the
// failure into a VALIDATION domain error naming field.
func checkVar(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Validation("%s %s", field, friendlyMessage(fieldErrs[0]))
	}
	return apperrors.Validation("%s is invalid", field)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s long", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s long", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "http_url":
		return "must be an absolute http(s) URL"
	case "login":
		return "may only contain letters, digits, '_', '.' and '-'"
	case "nocontrol":
		return "must not contain control characters"
	default:
		return "is invalid"
	}
}
