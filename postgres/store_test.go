// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"os"
	"testing"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/access/accesstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// newTestStore creates a store from the libpq environment variables,
// http://www.postgresql.org/docs/current/static/libpq-envars.html.
// Skips the test if PGHOST is not set.
func newTestStore(t *testing.T) access.Store {
	if os.Getenv("PGHOST") == "" {
		t.Skip("PGHOST not set; skipping PostgreSQL tests")
	}
	store, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	return store
}

// TestStore runs the generic access.Store tests.
func TestStore(t *testing.T) {
	suite.Run(t, &accesstest.Suite{Store: newTestStore(t)})
}

// TestMalformedID checks that IDs PostgreSQL cannot parse behave like
// missing computers.
func TestMalformedID(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Computer("not-a-uuid")
	assert.Equal(t, access.ErrNoSuchComputer, err)
	assert.Equal(t, access.ErrNoSuchComputer, store.Reserve("not-a-uuid"))
	assert.Equal(t, access.ErrNoSuchComputer, store.Relieve("not-a-uuid"))
}
