// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/memory"
	"github.com/diffeo/go-cap/restclient"
	"github.com/diffeo/go-cap/restserver"
	"github.com/diffeo/go-cap/token"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// ServerSuite sets up an object stack where the REST client code
// talks to the REST server code, which points at an in-memory store.
type ServerSuite struct {
	suite.Suite
	Store  access.Store
	Server *httptest.Server
	Client *restclient.Client
}

func (s *ServerSuite) SetupTest() {
	log, _ := test.NewNullLogger()
	s.Store = memory.New()
	router := restserver.NewRouter(restserver.Config{
		Store:      s.Store,
		Issuer:     &token.Issuer{Secret: []byte("server suite")},
		Log:        log,
		BcryptCost: bcrypt.MinCost,
	})
	s.Server = httptest.NewServer(router)

	var err error
	s.Client, err = restclient.New(restclient.Config{
		BaseURL:            s.Server.URL,
		Logger:             log,
		StrictComputerList: true,
	})
	s.Require().NoError(err)
}

func (s *ServerSuite) TearDownTest() {
	s.Server.Close()
}

func (s *ServerSuite) addComputer(os string) access.Computer {
	computer, err := s.Store.AddComputer(access.ComputerSpec{
		OS:  os,
		CPU: "x86_64",
		RAM: 8,
		SSH: "root@10.0.0.1",
	})
	s.Require().NoError(err)
	return computer
}

func (s *ServerSuite) TestRegisterMatchesLogin() {
	ctx := context.Background()
	session, err := s.Client.Register(ctx, "a@example.com", "pw", access.RoleUser)
	s.Require().NoError(err)
	s.NotEmpty(session.UserID)
	s.Equal("a@example.com", session.Email)
	s.Equal(access.RoleUser, session.Role)
	s.NotEmpty(session.Token)

	again, err := s.Client.Login(ctx, "a@example.com", "pw")
	s.Require().NoError(err)
	s.Equal(session.UserID, again.UserID)
	s.Equal(len(session.Data), len(again.Data))
	for key := range session.Data {
		s.Contains(again.Data, key)
	}
}

func (s *ServerSuite) TestRegisterTwice() {
	ctx := context.Background()
	_, err := s.Client.CreateAccount(ctx, "a@example.com", "pw", access.RoleUser)
	s.Require().NoError(err)
	_, err = s.Client.Register(ctx, "a@example.com", "pw", access.RoleUser)
	s.Equal(access.TransportFailure, access.Classify(err))
	s.True(errors.Is(err, access.ErrUserAlreadyExists))
}

func (s *ServerSuite) TestBadLogin() {
	ctx := context.Background()
	_, err := s.Client.Login(ctx, "nobody@example.com", "pw")
	s.True(errors.Is(err, access.ErrUserNotFound))

	_, err = s.Client.CreateAccount(ctx, "a@example.com", "pw", access.RoleUser)
	s.Require().NoError(err)
	_, err = s.Client.Login(ctx, "a@example.com", "wrong")
	s.True(errors.Is(err, access.ErrInvalidCredentials))
}

func (s *ServerSuite) TestComputers() {
	ctx := context.Background()
	linux := s.addComputer("linux")
	windows := s.addComputer("windows")
	session, err := s.Client.Register(ctx, "a@example.com", "pw", access.RoleUser)
	s.Require().NoError(err)

	computers, err := s.Client.GetAll(ctx, session.Token)
	s.Require().NoError(err)
	if s.Len(computers, 2) {
		s.Equal(linux.ID, computers[0]["id"])
		s.Equal(windows.ID, computers[1]["id"])
	}

	computer, err := s.Client.GetComputer(ctx, linux.ID, session.Token)
	s.Require().NoError(err)
	s.Equal(linux.ID, computer.ID)
	s.Equal("linux", computer.OS)
	s.Equal(8, computer.RAM)
	s.True(computer.Available)
	s.Equal("root@10.0.0.1", computer.SSH)

	_, err = s.Client.GetComputer(ctx, "missing", session.Token)
	s.True(errors.Is(err, access.ErrNoSuchComputer))
}

func (s *ServerSuite) TestReserveRelieve() {
	ctx := context.Background()
	computer := s.addComputer("linux")
	session, err := s.Client.Register(ctx, "a@example.com", "pw", access.RoleUser)
	s.Require().NoError(err)

	ok, err := s.Client.ReserveComputer(ctx, computer.ID, session.Token)
	s.NoError(err)
	s.True(ok)

	detail, err := s.Client.GetComputer(ctx, computer.ID, session.Token)
	s.Require().NoError(err)
	s.False(detail.Available)

	ok, err = s.Client.ReserveComputer(ctx, computer.ID, session.Token)
	s.False(ok)
	s.True(errors.Is(err, access.ErrComputerTaken))

	ok, err = s.Client.RelieveComputer(ctx, computer.ID, session.Token)
	s.NoError(err)
	s.True(ok)

	detail, err = s.Client.GetComputer(ctx, computer.ID, session.Token)
	s.Require().NoError(err)
	s.True(detail.Available)
}

func (s *ServerSuite) TestConcurrentReserve() {
	ctx := context.Background()
	computer := s.addComputer("linux")
	session, err := s.Client.Register(ctx, "a@example.com", "pw", access.RoleUser)
	s.Require().NoError(err)

	const racers = 8
	var wg sync.WaitGroup
	results := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := s.Client.ReserveComputer(ctx, computer.ID, session.Token)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)
	winners := 0
	for ok := range results {
		if ok {
			winners++
		}
	}
	s.Equal(1, winners)
}

func (s *ServerSuite) TestNoToken() {
	ctx := context.Background()
	computer := s.addComputer("linux")

	_, err := s.Client.GetAll(ctx, "")
	s.True(errors.Is(err, access.ErrInvalidToken))
	_, err = s.Client.GetComputer(ctx, computer.ID, "garbage")
	s.True(errors.Is(err, access.ErrInvalidToken))
	_, err = s.Client.ReserveComputer(ctx, computer.ID, "")
	s.True(errors.Is(err, access.ErrInvalidToken))
	_, err = s.Client.RelieveComputer(ctx, computer.ID, "")
	s.True(errors.Is(err, access.ErrInvalidToken))
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestServerStandaloneClient(t *testing.T) {
	// The client needs nothing but a base URL
	server := httptest.NewServer(restserver.NewRouter(restserver.Config{
		Store:      memory.New(),
		Issuer:     &token.Issuer{Secret: []byte("x")},
		BcryptCost: bcrypt.MinCost,
	}))
	defer server.Close()

	c, err := restclient.New(restclient.Config{BaseURL: server.URL})
	require.NoError(t, err)
	session, err := c.Register(context.Background(), "a@example.com", "pw", access.RoleAdmin)
	require.NoError(t, err)
	computers, err := c.GetAll(context.Background(), session.Token)
	assert.NoError(t, err)
	assert.Empty(t, computers)
}
