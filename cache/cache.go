// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package cache provides caching of users in front of another
// access.Store.  Every login looks up its user by email address, and
// users never change once created, so a cached user is never stale.
// Computers are not cached: their reservation state changes, possibly
// from other processes sharing the same database, and every computer
// method simply passes through to the underlying store.
package cache

import "github.com/diffeo/go-cap/access"

// DefaultSize is the number of users New keeps.
const DefaultSize = 1024

type cache struct {
	access.Store
	users *lru
}

// New creates a new caching store, wrapping some other store.
func New(store access.Store) access.Store {
	return NewWithSize(store, DefaultSize)
}

// NewWithSize creates a new caching store that keeps at most size
// users.
func NewWithSize(store access.Store, size int) access.Store {
	return &cache{
		Store: store,
		users: newLRU(size),
	}
}

func (c *cache) AddUser(email string, passwordHash []byte, role string) (access.User, error) {
	user, err := c.Store.AddUser(email, passwordHash, role)
	if err == nil {
		c.users.Put(user)
	}
	return user, err
}

func (c *cache) User(email string) (access.User, error) {
	return c.users.Get(email, c.Store.User)
}
