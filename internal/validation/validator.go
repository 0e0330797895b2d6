package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "rentx/internal/errors"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks a request DTO against its struct tags and converts
// failures into a validation error listing the offending fields.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("invalid request body")
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return apperr.Validation("invalid request: " + strings.Join(parts, ", "))
}
