package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
)

// GenericMessage is the one notification shown for every failure when detailed errors are off.
const GenericMessage = "Something bad happened; please try again later."

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnauthorized
	KindNotFound
	KindValidation
	KindTransient
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// kindForStatus maps a non-2xx status code to a kind.
func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindTransient
	}
}

// APIError is returned by every [Client] operation that fails.
//
// Status is zero when no response was received.
type APIError struct {
	Op     string
	Method string
	Path   string
	Status int
	Kind   ErrorKind
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s %s: status %d: %v", e.Op, e.Method, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches [shared.ErrAPIRequest] for every APIError and [shared.ErrNotAuthenticated] for unauthorized ones.
func (e *APIError) Is(target error) bool {
	switch target {
	case shared.ErrAPIRequest:
		return true
	case shared.ErrNotAuthenticated:
		return e.Kind == KindUnauthorized
	}
	return false
}

// KindOf classifies any error returned by this package or its callers.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrMissingArgument):
		return KindValidation
	case errors.Is(err, shared.ErrNotAuthenticated):
		return KindUnauthorized
	case errors.Is(err, shared.ErrMovieNotFound):
		return KindNotFound
	}
	return KindTransient
}
