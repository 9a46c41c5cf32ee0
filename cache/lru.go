// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package cache

// This file provides a simple LRU cache of users keyed by email
// address.

import (
	"container/list"
	"sync"

	"github.com/diffeo/go-cap/access"
)

// lru is a least-recently-used cache with a fixed capacity.  The cache
// can be safely accessed from multiple goroutines.
type lru struct {
	size      int
	lock      sync.RWMutex
	evictList *list.List
	index     map[string]*list.Element
}

func newLRU(size int) *lru {
	return &lru{
		size:      size,
		evictList: list.New(),
		index:     make(map[string]*list.Element),
	}
}

// Get retrieves a user from the cache.  If it is not present, calls
// the fetch function, and if that succeeds, saves the user and
// returns it.  This should return an error only if the user is not
// present and the fetch function returns an error.
func (lru *lru) Get(email string, fetch func(string) (access.User, error)) (access.User, error) {
	// This sadly happens under a writer lock, since we need to move
	// the item to the front of the list if it is present
	lru.lock.Lock()
	defer lru.lock.Unlock()

	// Is it there?
	if element, present := lru.index[email]; present {
		lru.evictList.MoveToBack(element)
		return element.Value.(access.User), nil
	}

	// Otherwise call the fetch function
	user, err := fetch(email)
	if err != nil {
		return user, err
	}
	lru.add(user)
	return user, nil
}

// Put adds a user to the LRU cache, possibly evicting something.
func (lru *lru) Put(user access.User) {
	lru.lock.Lock()
	defer lru.lock.Unlock()

	// Are we just updating an existing item?
	if element, present := lru.index[user.Email]; present {
		element.Value = user
		lru.evictList.MoveToBack(element)
		return
	}

	// Otherwise add it
	lru.add(user)
}

// add is an internal helper, running under the write lock, that adds a
// new user to the cache.  The user is known to not already exist.
func (lru *lru) add(user access.User) {
	element := lru.evictList.PushBack(user)
	lru.index[user.Email] = element

	// If this caused the cache to go over size, start evicting items
	for len(lru.index) > lru.size {
		head := lru.evictList.Front()
		evicted := head.Value.(access.User)
		delete(lru.index, evicted.Email)
		lru.evictList.Remove(head)
	}
}
