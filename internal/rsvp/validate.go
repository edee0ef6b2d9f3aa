package rsvp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"wedding-rsvp/internal/models"
)

// ErrInvalid marks a form that cannot become a submission.
var ErrInvalid = errors.New("invalid submission")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Normalize applies form defaults: attendance falls back to yes.
func Normalize(f models.Form) models.Form {
	if f.Attendance == "" {
		f.Attendance = models.AttendanceYes
	}
	return f
}

// Validate checks a normalized form. The returned error wraps ErrInvalid
// and names every offending field.
func Validate(f models.Form) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, strings.ToLower(e.Field())+" "+e.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
}
