package internal

import (
	"errors"
	"fmt"
	"ima/entity"
)

// ValidationError reports a mandatory field that is missing, empty or malformed.
// It is raised before any network attempt.
type ValidationError struct {
	Command entity.Command
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("command %s: %s: %s", e.Command.Name(), e.Field, e.Reason)
}

// TransportError wraps a failure to deliver a request to the merchant handler or
// to receive a successful HTTP response from it.
type TransportError struct {
	URL        string
	StatusCode int
	cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport %s: status %d: %v", e.URL, e.StatusCode, e.cause)
	}
	return fmt.Sprintf("transport %s: %v", e.URL, e.cause)
}

func (e *TransportError) Unwrap() error {
	return e.cause
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
