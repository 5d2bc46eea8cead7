// Package schemavalidator owns the shared request validator. Custom tags are
// registered once here, and struct fields are reported by their json names so
// error messages match the wire format.
package schemavalidator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	v    *validator.Validate
	once sync.Once
)

// V returns the shared validator instance.
func V() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonTagName)
		v.RegisterValidation("nonneg_decimal", nonNegativeDecimal)
	})
	return v
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// nonNegativeDecimal accepts zero or positive decimal amounts.
func nonNegativeDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative()
}

// GetJSONFieldPath returns the json path of a field error relative to the
// request payload. The tag name function already records json names in the
// namespace; only the leading struct name is stripped.
func GetJSONFieldPath(e validator.FieldError) string {
	path := e.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
