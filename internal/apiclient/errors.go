package apiclient

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when the backend reports a failure without a message.
const FallbackMessage = "Unknown error"

// TransportError is a network failure, an unexpected status without a JSON
// envelope, or a body that could not be parsed.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError is a parsed response that reported failure.
type AppError struct {
	Endpoint string
	Message  string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// IsAppError reports whether err is a backend-reported failure.
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// IsTransportError reports whether err is a transport or parse failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message returns the user-facing text for err: the server message for an
// AppError, the underlying cause for a TransportError.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Message == "" {
			return FallbackMessage
		}
		return ae.Message
	}
	var te *TransportError
	if errors.As(err, &te) {
		if te.Err != nil {
			return te.Err.Error()
		}
		return fmt.Sprintf("unexpected status %d", te.Status)
	}
	return err.Error()
}
