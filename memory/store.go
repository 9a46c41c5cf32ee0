// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the access.Store interface.  There is no persistence.  The entire
// store is behind a single mutex, so in particular at most one of
// several concurrent reservations of the same computer succeeds.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of the REST
// client and server.
package memory

import (
	"sync"

	"github.com/diffeo/go-cap/access"
	"github.com/satori/go.uuid"
)

// New creates a new, empty access.Store that operates purely in
// memory.
func New() access.Store {
	return &memStore{
		users:     make(map[string]access.User),
		computers: make(map[string]*access.Computer),
	}
}

type memStore struct {
	users     map[string]access.User
	computers map[string]*access.Computer
	order     []string
	sem       sync.Mutex
}

func (s *memStore) AddUser(email string, passwordHash []byte, role string) (access.User, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	if _, exists := s.users[email]; exists {
		return access.User{}, access.ErrUserAlreadyExists
	}
	user := access.User{
		ID:           uuid.NewV4().String(),
		Email:        email,
		Role:         role,
		PasswordHash: append([]byte(nil), passwordHash...),
	}
	s.users[email] = user
	return user, nil
}

func (s *memStore) User(email string) (access.User, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	user, exists := s.users[email]
	if !exists {
		return access.User{}, access.ErrUserNotFound
	}
	return user, nil
}

func (s *memStore) AddComputer(spec access.ComputerSpec) (access.Computer, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	computer := &access.Computer{
		ID:        uuid.NewV4().String(),
		OS:        spec.OS,
		CPU:       spec.CPU,
		RAM:       spec.RAM,
		SSH:       spec.SSH,
		Available: true,
	}
	s.computers[computer.ID] = computer
	s.order = append(s.order, computer.ID)
	return *computer, nil
}

func (s *memStore) Computer(id string) (access.Computer, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	computer, exists := s.computers[id]
	if !exists {
		return access.Computer{}, access.ErrNoSuchComputer
	}
	return *computer, nil
}

func (s *memStore) Computers() ([]access.Computer, error) {
	s.sem.Lock()
	defer s.sem.Unlock()

	result := make([]access.Computer, len(s.order))
	for i, id := range s.order {
		result[i] = *s.computers[id]
	}
	return result, nil
}

func (s *memStore) Reserve(id string) error {
	s.sem.Lock()
	defer s.sem.Unlock()

	computer, exists := s.computers[id]
	if !exists {
		return access.ErrNoSuchComputer
	}
	if !computer.Available {
		return access.ErrComputerTaken
	}
	computer.Available = false
	return nil
}

func (s *memStore) Relieve(id string) error {
	s.sem.Lock()
	defer s.sem.Unlock()

	computer, exists := s.computers[id]
	if !exists {
		return access.ErrNoSuchComputer
	}
	computer.Available = true
	return nil
}
