package errors

import "errors"

// Codes shared between the domain and transport layers.
const (
	CodeMissingField       = "missing_field"
	CodeUnauthorized       = "unauthorized"
	CodeWeatherUnavailable = "weather_unavailable"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// MissingField reports a required request field that was not supplied.
func MissingField(field string) error {
	return &AppError{Code: CodeMissingField, Message: field + " is required"}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// PublicMessage returns the message intended for API consumers, without the wrapped cause.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
