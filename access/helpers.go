// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package access

import (
	"context"
	"errors"
)

// Register creates an account and then logs in with the same
// credentials, returning the login result exactly as Login would.  If
// account creation fails, Login is not attempted and that error is
// returned.
func Register(ctx context.Context, accounts Accounts, email, password, role string) (Session, error) {
	_, err := accounts.CreateAccount(ctx, email, password, role)
	if err != nil {
		return Session{}, err
	}
	return accounts.Login(ctx, email, password)
}

// Outcome is the classification of the result of a client call.
type Outcome int

const (
	// OK means the call succeeded and its value is usable.
	OK Outcome = iota

	// InvalidShape means the backend responded, but without the
	// field that marks success.
	InvalidShape

	// TransportFailure means the request itself failed.
	TransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case InvalidShape:
		return "invalid_shape"
	case TransportFailure:
		return "transport_failure"
	}
	return "unknown"
}

// Classify returns the outcome that err represents.  A nil error is
// OK; ErrInvalidShape is InvalidShape; anything else is a
// TransportFailure, whether or not it is wrapped in ErrTransport.
func Classify(err error) Outcome {
	if err == nil {
		return OK
	}
	var shape ErrInvalidShape
	if errors.As(err, &shape) {
		return InvalidShape
	}
	return TransportFailure
}
