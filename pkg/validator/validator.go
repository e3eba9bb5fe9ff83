// Package validator envuelve go-playground/validator para los DTOs de entrada.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los tags json dan nombres de campo legibles en los mensajes de error.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// decimal.Decimal se valida como float64 para poder usar gt/gte/lte en los tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// FieldError describe el primer campo que no pasó la validación.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("campo '%s' inválido (%s=%s)", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("campo '%s' inválido (%s)", e.Field, e.Tag)
}

// Validate valida la estructura y devuelve *FieldError con el primer fallo, o nil.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return &FieldError{Field: f.Field(), Tag: f.Tag(), Param: f.Param()}
	}
	return err
}
