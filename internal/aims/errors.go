package aims

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError. The presentation layer switches on Kind,
// never on raw status codes.
type Kind int

const (
	// KindValidation covers client-side mirror validation failures and
	// backend 400 rejections.
	KindValidation Kind = iota
	// KindAuth is an authentication failure (401). By the time a caller
	// sees one, the session record has already been invalidated.
	KindAuth
	// KindForbidden is an authorization failure (403).
	KindForbidden
	// KindNotFound is a missing resource (404).
	KindNotFound
	// KindServer is a backend failure (5xx). Not retried at this layer.
	KindServer
	// KindTransport is a connection-level failure: the request never
	// produced an HTTP response.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// APIError is the typed error every client operation returns on failure.
// Status is zero for errors that never reached the backend.
type APIError struct {
	Status  int
	Message string
	Kind    Kind
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func kindFromStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}

// ErrorKind extracts the Kind from an error, treating anything that is not
// an APIError as a transport failure.
func ErrorKind(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	return ErrorKind(err) == KindAuth
}

func validationError(err error) *APIError {
	return &APIError{Kind: KindValidation, Message: err.Error()}
}

func transportError(err error) *APIError {
	return &APIError{Kind: KindTransport, Message: err.Error()}
}
