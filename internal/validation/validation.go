// Package validation checks item form input with go-playground/validator.
//
// The only rule the forms enforce is that name, price, and quantity are not blank.
// Numeric well-formedness is deliberately left to [models.ItemDetails.ToItem], which falls back to zero.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed rule on one form field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors is the set of field failures for a single form.
type ValidationErrors []FieldError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, fe := range v {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, "; ")
}

// Unwrap lets callers match [shared.ErrInvalidInput] with errors.Is.
func (v ValidationErrors) Unwrap() error {
	return shared.ErrInvalidInput
}

// Fields returns the names of the failing fields in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, fe := range v {
		fields = append(fields, fe.Field)
	}
	return fields
}

// Validator wraps a configured [validator.Validate].
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports JSON field names and knows the notblank tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validator: %v", err))
	}

	return &Validator{validate: v}
}

// Validate validates a struct and returns [ValidationErrors] on failure.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: msgForTag(fe)})
	}
	return out
}

var defaultValidator = New()

// ValidateDetails checks that every field of an item form is filled in.
func ValidateDetails(details models.ItemDetails) error {
	return defaultValidator.Validate(details)
}

// IsValid reports whether [ValidateDetails] passes.
func IsValid(details models.ItemDetails) bool {
	return ValidateDetails(details) == nil
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return !shared.IsBlank(field.String())
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
