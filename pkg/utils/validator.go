package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"maps-proxy/internal/models"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts validator.v10 to echo.Validator and reports
// failures as *models.ValidationError keyed by JSON field name.
type RequestValidator struct {
	validate *validator.Validate
}

var (
	once     sync.Once
	instance *RequestValidator
)

// GetValidator returns the shared request validator.
func GetValidator() *RequestValidator {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		instance = &RequestValidator{validate: v}
	})
	return instance
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("utils.Validate: %w", err)
	}

	out := &models.ValidationError{Fields: make([]models.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, models.FieldError{
			Field:   fieldPath(fe),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from the namespace, e.g.
// "SearchPlacesRequest.radius" -> "radius".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
