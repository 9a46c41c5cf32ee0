// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package access

import (
	"errors"
	"fmt"
)

// ErrUserAlreadyExists is returned when registering an email address
// that already has an account.
var ErrUserAlreadyExists = errors.New("user already exists")

// ErrUserNotFound is returned when logging in with an unknown email
// address.
var ErrUserNotFound = errors.New("user doesn't exist")

// ErrInvalidCredentials is returned when logging in with the wrong
// password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoSuchComputer is returned when a computer ID does not match any
// computer.
var ErrNoSuchComputer = errors.New("computer doesn't exist")

// ErrComputerTaken is returned from Store.Reserve() if the computer is
// already reserved.
var ErrComputerTaken = errors.New("computer already taken")

// ErrInvalidToken is returned when a request carries a missing,
// malformed, or expired token.
var ErrInvalidToken = errors.New("invalid token")

// ErrPermissionDenied is returned when a valid token does not carry
// the role an operation needs.
var ErrPermissionDenied = errors.New("permission denied")

// WellKnownErrors lists the errors that keep their identity across the
// wire.  Their messages are the exact strings the backend sends.
var WellKnownErrors = []error{
	ErrUserAlreadyExists,
	ErrUserNotFound,
	ErrInvalidCredentials,
	ErrNoSuchComputer,
	ErrComputerTaken,
	ErrInvalidToken,
	ErrPermissionDenied,
}

// ErrInvalidShape is returned by client operations when the backend
// answered successfully but the response did not contain the field
// that marks success.
type ErrInvalidShape struct {
	// Operation names the client operation, e.g. "login".
	Operation string

	// Field is the marker field that was missing, e.g. "token".
	Field string
}

func (err ErrInvalidShape) Error() string {
	return fmt.Sprintf("%v: response has no %q field", err.Operation, err.Field)
}

// ErrTransport is returned by client operations when the request
// could not be completed: the connection failed, the backend returned
// a non-success status, or the body could not be decoded.
type ErrTransport struct {
	// Operation names the client operation, e.g. "login".
	Operation string

	// Err is the underlying failure.
	Err error
}

func (err ErrTransport) Error() string {
	return fmt.Sprintf("%v: %v", err.Operation, err.Err)
}

// Unwrap returns the underlying failure, so that errors.Is can find
// well-known backend errors inside a transport failure.
func (err ErrTransport) Unwrap() error {
	return err.Err
}
