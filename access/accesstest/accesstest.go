// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package accesstest provides generic functional tests for the
// access.Store interface.  A typical backend test module needs to wrap
// Suite to create its store:
//
//     package mybackend
//
//     import (
//             "testing"
//             "github.com/diffeo/go-cap/access/accesstest"
//             "github.com/stretchr/testify/suite"
//     )
//
//     // TestStore runs the access.Store generic tests.
//     func TestStore(t *testing.T) {
//             suite.Run(t, &accesstest.Suite{Store: New()})
//     }
//
// The tests do not assume the store starts out empty, so a persistent
// backend can run them against a shared database.
package accesstest

import (
	"sync"

	"github.com/diffeo/go-cap/access"
	"github.com/satori/go.uuid"
	"github.com/stretchr/testify/suite"
)

// Suite is the generic access.Store test suite.
type Suite struct {
	suite.Suite

	// Store contains the interface to the backend under test.  It
	// is set by importing packages.
	Store access.Store
}

// uniqueEmail returns an email address not used by any other test.
func uniqueEmail() string {
	return uuid.NewV4().String() + "@example.com"
}

func (s *Suite) addComputer() access.Computer {
	computer, err := s.Store.AddComputer(access.ComputerSpec{
		OS:  "linux",
		CPU: "x86_64",
		RAM: 16,
		SSH: "root@10.0.0.1",
	})
	s.Require().NoError(err)
	return computer
}

// TestUserLifetime adds a user and looks it back up.
func (s *Suite) TestUserLifetime() {
	email := uniqueEmail()
	_, err := s.Store.User(email)
	s.Equal(access.ErrUserNotFound, err)

	user, err := s.Store.AddUser(email, []byte("hash"), access.RoleUser)
	if s.NoError(err) {
		s.NotEmpty(user.ID)
		s.Equal(email, user.Email)
		s.Equal(access.RoleUser, user.Role)
		s.Equal([]byte("hash"), user.PasswordHash)
	}

	found, err := s.Store.User(email)
	if s.NoError(err) {
		s.Equal(user, found)
	}
}

// TestDuplicateUser checks that an email address can only be
// registered once.
func (s *Suite) TestDuplicateUser() {
	email := uniqueEmail()
	_, err := s.Store.AddUser(email, []byte("one"), access.RoleUser)
	s.Require().NoError(err)

	_, err = s.Store.AddUser(email, []byte("two"), access.RoleAdmin)
	s.Equal(access.ErrUserAlreadyExists, err)

	found, err := s.Store.User(email)
	if s.NoError(err) {
		s.Equal([]byte("one"), found.PasswordHash)
		s.Equal(access.RoleUser, found.Role)
	}
}

// TestComputerLifetime adds a computer and looks it back up.
func (s *Suite) TestComputerLifetime() {
	computer := s.addComputer()
	s.NotEmpty(computer.ID)
	s.True(computer.Available)
	s.Equal("root@10.0.0.1", computer.SSH)

	found, err := s.Store.Computer(computer.ID)
	if s.NoError(err) {
		s.Equal(computer, found)
	}
}

// TestNoSuchComputer checks the error for every operation on an
// unknown computer.
func (s *Suite) TestNoSuchComputer() {
	id := uuid.NewV4().String()
	_, err := s.Store.Computer(id)
	s.Equal(access.ErrNoSuchComputer, err)
	s.Equal(access.ErrNoSuchComputer, s.Store.Reserve(id))
	s.Equal(access.ErrNoSuchComputer, s.Store.Relieve(id))
}

// TestComputersInOrder checks that Computers lists new computers in
// the order they were added.
func (s *Suite) TestComputersInOrder() {
	first := s.addComputer()
	second := s.addComputer()

	all, err := s.Store.Computers()
	s.Require().NoError(err)
	var ids []string
	for _, computer := range all {
		if computer.ID == first.ID || computer.ID == second.ID {
			ids = append(ids, computer.ID)
		}
	}
	s.Equal([]string{first.ID, second.ID}, ids)
}

// TestReserveRelieve walks a computer through reservation and back.
func (s *Suite) TestReserveRelieve() {
	computer := s.addComputer()

	s.NoError(s.Store.Reserve(computer.ID))
	found, err := s.Store.Computer(computer.ID)
	if s.NoError(err) {
		s.False(found.Available)
	}

	s.Equal(access.ErrComputerTaken, s.Store.Reserve(computer.ID))

	s.NoError(s.Store.Relieve(computer.ID))
	found, err = s.Store.Computer(computer.ID)
	if s.NoError(err) {
		s.True(found.Available)
	}

	// Relieving an available computer is fine
	s.NoError(s.Store.Relieve(computer.ID))
	s.NoError(s.Store.Reserve(computer.ID))
}

// TestConcurrentReserve checks that exactly one of many concurrent
// reservations wins.
func (s *Suite) TestConcurrentReserve() {
	computer := s.addComputer()

	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Store.Reserve(computer.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			s.Equal(access.ErrComputerTaken, err)
		}
	}
	s.Equal(1, winners)
}
