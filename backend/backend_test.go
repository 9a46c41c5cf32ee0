// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	tests := []struct {
		Param string
		Impl  string
		Addr  string
		Str   string
	}{
		{"memory", "memory", "", "memory"},
		{"postgres", "postgres", "", "postgres"},
		{"postgres://u:p@db/cap", "postgres", "//u:p@db/cap", "postgres://u:p@db/cap"},
		{"postgres:host=db dbname=cap", "postgres", "host=db dbname=cap", "postgres:host=db dbname=cap"},
	}
	for _, test := range tests {
		b := Backend{Implementation: "memory", Address: "stale"}
		if assert.NoError(t, b.Set(test.Param), test.Param) {
			assert.Equal(t, test.Impl, b.Implementation, test.Param)
			assert.Equal(t, test.Addr, b.Address, test.Param)
			assert.Equal(t, test.Str, b.String(), test.Param)
		}
	}
}

func TestSetRejects(t *testing.T) {
	for _, param := range []string{"", ":foo", "redis:localhost"} {
		b := Backend{}
		assert.Error(t, b.Set(param), param)
	}
}

func TestMemoryStore(t *testing.T) {
	b := Backend{Implementation: "memory"}
	store, err := b.Store()
	if assert.NoError(t, err) {
		assert.NotNil(t, store)
	}
}

func TestUnknownStore(t *testing.T) {
	b := Backend{Implementation: "bogus"}
	_, err := b.Store()
	assert.Error(t, err)
}
