// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/diffeo/go-cap/access"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body, or the body fails validation.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

func (e ErrBadRequest) Unwrap() error {
	return e.Err
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// StatusFor picks the HTTP status code a REST service should return
// for err.
func StatusFor(err error) int {
	var withStatus ErrorStatus
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	switch {
	case errors.Is(err, access.ErrUserAlreadyExists),
		errors.Is(err, access.ErrComputerTaken):
		return http.StatusConflict
	case errors.Is(err, access.ErrUserNotFound),
		errors.Is(err, access.ErrNoSuchComputer):
		return http.StatusNotFound
	case errors.Is(err, access.ErrInvalidCredentials),
		errors.Is(err, access.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// FromError populates an ErrorResponse based on an error value.  The
// well-known access errors keep their own message; anything else that
// does not carry an HTTP status is reported as an internal server
// error without detail.
func (e *ErrorResponse) FromError(err error) {
	e.Status = StatusError
	for _, known := range access.WellKnownErrors {
		if errors.Is(err, known) {
			e.Error = known.Error()
			return
		}
	}
	var withStatus ErrorStatus
	if errors.As(err, &withStatus) {
		e.Error = err.Error()
		return
	}
	e.Error = "internal server error"
}

// ToError converts e back to a well-known access error, if that is
// possible.  If not, returns a plain error with the e.Error text.
func (e *ErrorResponse) ToError() error {
	for _, known := range access.WellKnownErrors {
		if e.Error == known.Error() {
			return known
		}
	}
	return errors.New(e.Error)
}
