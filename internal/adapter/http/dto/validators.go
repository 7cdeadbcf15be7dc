package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"demo-bank/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("recipient", validateRecipient)
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// validateRecipient allows up to service.MaxRecipientLength printable characters
// once surrounding whitespace is removed. Empty is allowed.
func validateRecipient(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if utf8.RuneCountInString(s) > service.MaxRecipientLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// jsonFieldName makes validation errors name fields as clients send them.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// ValidationMessage turns a binding error into a short client-facing message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		if errors.Is(err, errAmountType) {
			return errAmountType.Error()
		}
		return "invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "recipient":
		return fmt.Sprintf("recipient must be at most %d printable characters", service.MaxRecipientLength)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// SanitizeStruct trims whitespace from every exported string field
// (including *string) of a struct pointer. Named string types are trimmed too.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(strings.TrimSpace(elem.String()))
			}
		}
	}
}
