package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError lists the offending fields in a client-safe message.
type ValidationError struct {
	Fields []string
	msg    string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError reports a single bad field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []string{field}, msg: msg}
}

// ValidateStruct returns nil or a *ValidationError.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{msg: err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return &ValidationError{Fields: fields, msg: "invalid request: " + strings.Join(parts, "; ")}
}
