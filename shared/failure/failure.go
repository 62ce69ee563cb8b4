package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that carries the HTTP status it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError          = New(http.StatusForbidden, "You don't have the required permissions")
	ResourceRestrictedError = New(http.StatusForbidden, "You don't have permission to access this resource")
)

func (e *Failure) Error() string {
	return e.Message
}

// New returns a Failure with an arbitrary status code.
func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// BadRequest wraps a validation or decoding error. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

// Conflict is returned when a write collides with existing state, such as overlapping
// confirmed stays or a payment already recorded for a booking.
func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

// BadGateway reports an error raised by the payment provider.
func BadGateway(msg string) error {
	return New(http.StatusBadGateway, msg)
}

// GetCode returns the status carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
