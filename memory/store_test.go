// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"testing"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/access/accesstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// TestStore runs the generic access.Store tests.
func TestStore(t *testing.T) {
	suite.Run(t, &accesstest.Suite{Store: New()})
}

// TestComputerCopies checks that callers cannot change stored state
// through returned values.
func TestComputerCopies(t *testing.T) {
	store := New()
	computer, err := store.AddComputer(access.ComputerSpec{OS: "linux"})
	if !assert.NoError(t, err) {
		return
	}
	computer.Available = false
	found, err := store.Computer(computer.ID)
	if assert.NoError(t, err) {
		assert.True(t, found.Available)
	}
}
