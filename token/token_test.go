// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package token

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-cap/access"
	"github.com/stretchr/testify/assert"
)

var alice = access.User{ID: "u-1", Email: "alice@example.com", Role: access.RoleAdmin}

func TestIssueVerify(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(1000 * time.Hour)
	iss := &Issuer{Secret: []byte("secret"), Clock: clk}

	tok, err := iss.Issue(alice)
	if !assert.NoError(t, err) {
		return
	}
	claims, err := iss.Verify(tok)
	if assert.NoError(t, err) {
		assert.Equal(t, "u-1", claims.UID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, access.RoleAdmin, claims.Role)
		assert.Equal(t, clk.Now().Add(DefaultTTL).Unix(), claims.ExpiresAt.Unix())
	}
}

func TestExpiry(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(1000 * time.Hour)
	iss := &Issuer{Secret: []byte("secret"), TTL: time.Hour, Clock: clk}

	tok, err := iss.Issue(alice)
	if !assert.NoError(t, err) {
		return
	}

	clk.Add(59 * time.Minute)
	_, err = iss.Verify(tok)
	assert.NoError(t, err)

	clk.Add(2 * time.Minute)
	_, err = iss.Verify(tok)
	assert.True(t, errors.Is(err, access.ErrInvalidToken), "%v", err)
}

func TestWrongSecret(t *testing.T) {
	tok, err := (&Issuer{Secret: []byte("one")}).Issue(alice)
	if !assert.NoError(t, err) {
		return
	}
	_, err = (&Issuer{Secret: []byte("two")}).Verify(tok)
	assert.True(t, errors.Is(err, access.ErrInvalidToken), "%v", err)
}

func TestGarbage(t *testing.T) {
	iss := &Issuer{Secret: []byte("secret")}
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := iss.Verify(tok)
		assert.True(t, errors.Is(err, access.ErrInvalidToken), "%q: %v", tok, err)
	}
}

func TestNoSecret(t *testing.T) {
	_, err := (&Issuer{}).Issue(alice)
	assert.Error(t, err)
}
