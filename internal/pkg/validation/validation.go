// Package validation wraps go-playground/validator with the project's custom
// rules and converts its output into domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// New returns a validator that reports json field names and knows the
// strongpassword tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return v
}

// Struct validates s and returns a *domain.ValidationError listing every
// failing field, or nil. Non-validation errors are returned unchanged.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range ve {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// strongPassword requires an uppercase letter, a digit and a symbol.
// Anything that is neither a letter nor a digit counts as a symbol.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, digit, symbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}
	return upper && digit && symbol
}

// message converts a single FieldError into a human-readable message.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "strongpassword":
		return "Password must have at least 6 characters, one symbol, one number, and one uppercase letter."
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
