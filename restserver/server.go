// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restdata"
	"github.com/diffeo/go-cap/token"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the REST service needs.
type Config struct {
	// Store holds users and computers.  Required.
	Store access.Store

	// Issuer signs and checks login tokens.  Required.
	Issuer *token.Issuer

	// Log receives request failures.  Defaults to the logrus
	// standard logger.
	Log logrus.FieldLogger

	// BcryptCost is the password hashing cost.  Zero means
	// bcrypt.DefaultCost.
	BcryptCost int
}

// NewRouter creates a new HTTP handler that processes all platform
// requests.  All resources are under /api.  For more control over this
// setup, create a mux.Router and call PopulateRouter instead.
func NewRouter(cfg Config) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, cfg)
	return r
}

// PopulateRouter adds the platform routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to serve other things such as metrics alongside:
//
//     r := mux.NewRouter()
//     restserver.PopulateRouter(r, cfg)
//     r.Handle("/metrics", promhttp.Handler())
func PopulateRouter(r *mux.Router, cfg Config) {
	api := &restAPI{
		Store:      cfg.Store,
		Issuer:     cfg.Issuer,
		Log:        cfg.Log,
		BcryptCost: cfg.BcryptCost,
	}
	if api.Log == nil {
		api.Log = logrus.StandardLogger()
	}
	if api.BcryptCost == 0 {
		api.BcryptCost = bcrypt.DefaultCost
	}
	api.PopulateRouter(r)
	api.observe()
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	Store      access.Store
	Issuer     *token.Issuer
	Log        logrus.FieldLogger
	BcryptCost int
}

// handler fills in the common parts of a resourceHandler.
func (api *restAPI) handler(h *resourceHandler) *resourceHandler {
	h.Context = api.Context
	h.Log = api.Log
	return h
}

// PopulateRouter adds all URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.Path("/register").Name("register").Handler(api.handler(&resourceHandler{
		Name:           "register",
		Representation: restdata.RegisterRequest{},
		Post:           api.Register,
	}))
	auth.Path("/login").Name("login").Handler(api.handler(&resourceHandler{
		Name:           "login",
		Representation: restdata.LoginRequest{},
		Post:           api.Login,
	}))

	computers := r.PathPrefix("/api").Subrouter()
	computers.Path("/get_all").Name("get_all").Handler(api.handler(&resourceHandler{
		Name: "get_all",
		Get:  api.GetAll,
	}))
	computers.Path("/get_computer").Name("get_computer").Handler(api.handler(&resourceHandler{
		Name: "get_computer",
		Get:  api.GetComputer,
	}))
	computers.Path("/reserve_computer").Name("reserve_computer").Handler(api.handler(&resourceHandler{
		Name:           "reserve_computer",
		Representation: restdata.ComputerRequest{},
		Post:           api.ReserveComputer,
	}))
	computers.Path("/relieve_computer").Name("relieve_computer").Handler(api.handler(&resourceHandler{
		Name:           "relieve_computer",
		Representation: restdata.ComputerRequest{},
		Post:           api.RelieveComputer,
	}))
	computers.Path("/add_computer").Name("add_computer").Handler(api.handler(&resourceHandler{
		Name:           "add_computer",
		Representation: restdata.AddComputerRequest{},
		Post:           api.AddComputer,
	}))
}
