// Package validation holds the go-playground validator setup shared by the
// domain validators: error translation and the custom tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"hotelbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

const (
	TagISODate         = "iso_date"
	TagRoomTypesUnique = "room_types_unique"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors for an AppError payload.
func (v ValidationErrors) Details() map[string]any {
	return map[string]any{"errors": []ValidationError(v)}
}

// New returns a validator with the custom tags registered. Field names in
// errors use the json tag.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation(TagISODate, validateISODate); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagISODate, err)
	}
	if err := v.RegisterValidation(TagRoomTypesUnique, validateRoomTypesUnique); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagRoomTypesUnique, err)
	}
	return v, nil
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}

func validateRoomTypesUnique(fl validator.FieldLevel) bool {
	rooms, ok := fl.Field().Interface().([]model.RoomClass)
	if !ok {
		return false
	}
	seen := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		key := strings.ToLower(strings.TrimSpace(r.Type))
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

// Struct validates s and translates validator errors into ValidationErrors.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Translate(validationErrs)
	}
	return err
}

func Translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors

	for _, err := range errs {
		field := err.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}

		message := err.Error()
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +905321234567)", err.Field())
		case "excludes":
			message = fmt.Sprintf("%s must not contain '%s'", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case TagISODate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case TagRoomTypesUnique:
			message = fmt.Sprintf("%s must not contain duplicate room types", err.Field())
		}

		out = append(out, ValidationError{Field: field, Message: message})
	}

	return out
}
