package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/go-playground/validator/v10"
)

// Validator plugs go-playground/validator into echo.Context.Validate.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ValidationErrors lists the failing fields by their json names. It returns
// nil for errors that are not validation failures.
func ValidationErrors(err error) []response.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]response.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, response.ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		})
	}

	return out
}
