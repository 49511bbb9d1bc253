package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@([A-Za-z0-9.-]+\.[A-Za-z]{2,})$`)
	phonePattern = regexp.MustCompile(`^(\+27|0)[1-9][0-9]{8}$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("guest_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = validate.RegisterValidation("za_phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
}

// IsValidEmail reports whether s looks like a deliverable address.
func IsValidEmail(s string) bool {
	return s != "" && emailPattern.MatchString(s)
}

// IsValidPhone accepts South African numbers in local (0XX) or +27 form.
// Spaces and dashes are ignored.
func IsValidPhone(s string) bool {
	clean := strings.NewReplacer(" ", "", "-", "").Replace(s)
	if len(clean) < 10 || len(clean) > 13 {
		return false
	}
	return phonePattern.MatchString(clean)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
