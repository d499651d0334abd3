package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pverrors "github.com/idelchi/pegvault/internal/errors"
)

// newValidator returns a validator with the custom validations registered
// and field names reported by their configuration key.
func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("basename", validateBasename); err != nil {
		return nil, fmt.Errorf("registering basename validation: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v, nil
}

// validateBasename accepts strings that are a single path element.
func validateBasename(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	return value != "" && value != "." && value != ".." && !strings.ContainsAny(value, `/\`) &&
		filepath.Base(value) == value
}

// describe rewrites validator errors into one readable line per field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}

	return fmt.Errorf("%w: %w: %s", pverrors.ErrConfig, ErrInvalid, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "basename":
		return fmt.Sprintf("%s must be a plain file name prefix, got %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must not be lower than field %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
