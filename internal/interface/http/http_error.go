package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

// Transport-only error codes. Domain codes come from pkg/errors.
const (
	codeInvalidRequest  = "invalid_request"
	codeUpstreamWeather = "upstream_weather_error"
	codeInternal        = "internal_error"

	internalMessage = "something went wrong"
)

// domainStatus maps advisor failure codes onto response statuses.
var domainStatus = map[string]int{
	apperrors.CodeMissingField:       http.StatusBadRequest,
	apperrors.CodeUnauthorized:       http.StatusForbidden,
	apperrors.CodeWeatherUnavailable: http.StatusBadGateway,
}

// HTTPError is rendered by errorHandlingMiddleware as {"message": Message}
// with the given Status. Code and Err are only logged.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func internalError(err error) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, codeInternal, internalMessage, err)
}

// asHTTPError translates anything a handler reports. Known AppError codes keep
// their public message; everything else is hidden behind internalMessage.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := domainStatus[appErr.Code]; ok {
			return NewHTTPError(status, appErr.Code, appErr.Message, err)
		}
	}
	return internalError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
