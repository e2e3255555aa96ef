package journal

import (
	"errors"
	"fmt"
)

// Sentinels for matching the error kinds with errors.Is.
var (
	ErrInvalidInput  = errors.New("journal: invalid input")
	ErrNetwork       = errors.New("journal: network error")
	ErrServer        = errors.New("journal: server error")
	ErrDecoding      = errors.New("journal: decoding error")
	ErrUnimplemented = errors.New("journal: not implemented")
)

// InvalidInputError is returned for 4xx responses. Detail holds the server's
// {"detail": ...} message when the body carried one.
type InvalidInputError struct {
	Status int
	Detail *string
}

func (e *InvalidInputError) Error() string {
	if e.Detail != nil {
		return *e.Detail
	}
	return "Unknown error."
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NetworkError covers transport failures, bad endpoints, cancelled contexts
// and responses that are not usable HTTP responses.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "Unable to connect to the server. Please check your internet connection."
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ServerError is returned for 5xx responses.
type ServerError struct {
	Code int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("The server encountered an error. (Code: %d)", e.Code)
}

func (e *ServerError) Is(target error) bool { return target == ErrServer }

// DecodingError means a payload could not be converted to or from its wire
// shape. Context names the entity, e.g. "trip" or "token".
type DecodingError struct {
	Context string
	Err     error
}

func (e *DecodingError) Error() string {
	return "Failed to decode " + e.Context
}

func (e *DecodingError) Unwrap() error { return e.Err }

func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }

// Message returns the text a presentation layer should show for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		invalid  *InvalidInputError
		network  *NetworkError
		server   *ServerError
		decoding *DecodingError
	)
	switch {
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.As(err, &network):
		return network.Error()
	case errors.As(err, &server):
		return server.Error()
	case errors.As(err, &decoding):
		return decoding.Error()
	}
	return err.Error()
}

func networkError(err error) error {
	return &NetworkError{Err: err}
}

func decodingError(context string, err error) error {
	return &DecodingError{Context: context, Err: err}
}
