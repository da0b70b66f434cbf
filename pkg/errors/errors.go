package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayload means the callback body carried no locatable
	// plist document. Terminal client error, never retried.
	ErrInvalidPayload = errors.New("Invalid plist data")

	// ErrParseFailure means a plist document was located but could not
	// be parsed as XML.
	ErrParseFailure = errors.New("failed to parse plist payload")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
