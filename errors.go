package formdata

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotObject is returned when the object does not encode to a JSON object.
	ErrNotObject = errors.New("value does not encode to a JSON object")
	// ErrNotScalar is returned for a nested object or array member.
	ErrNotScalar = errors.New("value is not a scalar")
	// ErrInvalidMIMEType is returned for a file MIME type that cannot be
	// written as a header value.
	ErrInvalidMIMEType = errors.New("invalid MIME type")
	// ErrInvalidBoundary is returned for a boundary outside the RFC 2046
	// grammar, or one that occurs inside a part body.
	ErrInvalidBoundary = errors.New("invalid boundary")
	// ErrNoURL is returned by Client when no target URL is given.
	ErrNoURL = errors.New("url not specified")
)

// EncodingError reports an object that cannot be flattened into string
// fields. Key is empty when the object as a whole is at fault.
type EncodingError struct {
	Key string
	Err error
}

func (e *EncodingError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("formdata: encode object: %v", e.Err)
	}
	return fmt.Sprintf("formdata: encode field %q: %v", e.Key, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// StatusError is returned by Client when the server answers with a non-2xx
// status after all retries.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("formdata: unexpected response status %s", e.Status)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}
