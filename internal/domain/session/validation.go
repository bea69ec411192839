package session

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// submissionValidate checks Submission struct tags. The notblank rule is
// registered in init.
var submissionValidate *validator.Validate

func init() {
	submissionValidate = validator.New()
	submissionValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = submissionValidate.RegisterValidation("notblank", validateNotBlank, true)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateSubmission rejects a submission with any empty or whitespace-only
// field. The returned error wraps ErrInvalidInput and names the fields.
func ValidateSubmission(sub Submission) error {
	err := submissionValidate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: blank %s", ErrInvalidInput, strings.Join(fields, ", "))
}

// Normalize trims the identity fields so "Ana" and "Ana " group together.
// Task text is kept as written.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:  strings.TrimSpace(s.Name),
		Buddy: strings.TrimSpace(s.Buddy),
		Task:  s.Task,
	}
}
