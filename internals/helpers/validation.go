package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// NewValidator: validator.v10 dengan nama field mengikuti tag json
// dan dukungan decimal.Decimal.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal divalidasi dalam bentuk string apa adanya (tanpa float64),
	// batasnya pakai dgte/dlte
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("dgte", decimalCmp(func(c int) bool { return c >= 0 }))
	_ = v.RegisterValidation("dlte", decimalCmp(func(c int) bool { return c <= 0 }))
	return v
}

// decimalCmp: bandingkan nilai field dengan param tag pakai decimal.Cmp.
func decimalCmp(ok func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		var d decimal.Decimal
		switch f := fl.Field(); f.Kind() {
		case reflect.String:
			if d, err = decimal.NewFromString(f.String()); err != nil {
				return false
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			d = decimal.NewFromInt(f.Int())
		case reflect.Float32, reflect.Float64:
			d = decimal.NewFromFloat(f.Float())
		default:
			return false
		}
		return ok(d.Cmp(bound))
	}
}

// ValidationFieldErrors mengubah validator.ValidationErrors → map field → pesan.
func ValidationFieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err != nil {
			out["_"] = []string{err.Error()}
		}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		out[field] = append(out[field], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "notblank":
		return "must not be blank"
	case "gte", "dgte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte", "dlte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
