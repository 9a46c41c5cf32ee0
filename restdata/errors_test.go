// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/diffeo/go-cap/access"
	"github.com/stretchr/testify/assert"
)

func TestWellKnownErrorsRoundTrip(t *testing.T) {
	for _, known := range access.WellKnownErrors {
		resp := ErrorResponse{}
		resp.FromError(fmt.Errorf("memory.Reserve: %w", known))
		assert.Equal(t, StatusError, resp.Status)
		assert.Equal(t, known.Error(), resp.Error)
		assert.Equal(t, known, resp.ToError())
	}
}

func TestUnknownErrorHidden(t *testing.T) {
	resp := ErrorResponse{}
	resp.FromError(errors.New("pq: connection reset"))
	assert.Equal(t, "internal server error", resp.Error)
	assert.EqualError(t, resp.ToError(), "internal server error")
}

func TestBadRequestMessageKept(t *testing.T) {
	resp := ErrorResponse{}
	resp.FromError(ErrBadRequest{Err: errors.New("userEmail is not an email")})
	assert.Equal(t, "userEmail is not an email", resp.Error)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		Err    error
		Status int
	}{
		{access.ErrUserAlreadyExists, http.StatusConflict},
		{access.ErrComputerTaken, http.StatusConflict},
		{access.ErrUserNotFound, http.StatusNotFound},
		{access.ErrNoSuchComputer, http.StatusNotFound},
		{access.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", access.ErrInvalidToken), http.StatusUnauthorized},
		{access.ErrPermissionDenied, http.StatusForbidden},
		{ErrBadRequest{Err: errors.New("x")}, http.StatusBadRequest},
		{ErrUnsupportedMediaType{Type: "text/html"}, http.StatusUnsupportedMediaType},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		assert.Equal(t, test.Status, StatusFor(test.Err), "%v", test.Err)
	}
}
