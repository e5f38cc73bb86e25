package formclient

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoActiveSession is returned when an authenticated endpoint is called
// without a usable session token.
var ErrNoActiveSession = goerrors.New("easeform: no active session", goerrors.CategoryAuth)

// APIError is a non-2xx response from the API, carrying the status code and
// the server's detail message. It travels inside a categorized error; use
// errors.As to reach it, or the Is* helpers for the statuses callers branch
// on.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("easeform: api error (status %d)", e.Status)
	}
	return fmt.Sprintf("easeform: %s (status %d)", e.Detail, e.Status)
}

// newAPIError builds the categorized error for a non-2xx response.
func newAPIError(status int, detail string) error {
	return goerrors.Wrap(&APIError{Status: status, Detail: detail}, categoryForStatus(status), "easeform api request failed")
}

// categoryForStatus maps an HTTP status to the error category callers can
// dispatch on without reading the status themselves.
func categoryForStatus(status int) goerrors.Category {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return goerrors.CategoryAuth
	case http.StatusNotFound:
		return goerrors.CategoryNotFound
	case http.StatusConflict:
		return goerrors.CategoryConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return goerrors.CategoryValidation
	default:
		return goerrors.CategoryInternal
	}
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is an API 409, e.g. a duplicate response
// from the same device.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
