// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restdata"
	"github.com/diffeo/go-cap/restserver"
	"github.com/diffeo/go-cap/token"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
	"golang.org/x/time/rate"
)

// HTTP serves the platform REST API.
type HTTP struct {
	store       access.Store
	config      Config
	laddr       string
	logRequests bool
}

// Handler builds the complete HTTP handler: the REST API, /metrics,
// and the middleware stack in front of them.
func (h *HTTP) Handler() http.Handler {
	r := mux.NewRouter()
	restserver.PopulateRouter(r, restserver.Config{
		Store: h.store,
		Issuer: &token.Issuer{
			Secret: []byte(h.config.Secret),
			TTL:    h.config.TokenTTL,
		},
		Log: logrus.StandardLogger(),
	})
	r.Handle("/metrics", promhttp.Handler())

	n := negroni.New(negroni.NewRecovery())
	if h.logRequests {
		n.Use(negroni.NewLogger())
	}
	if h.config.Rate > 0 {
		n.Use(rateLimit(rate.NewLimiter(rate.Limit(h.config.Rate), h.config.Burst)))
	}
	n.UseHandler(r)
	return n
}

// Serve runs an HTTP server on the configured local address.  This
// serves connections until the listener fails, and returns that
// error.
func (h *HTTP) Serve() error {
	logrus.WithFields(logrus.Fields{
		"addr": h.laddr,
	}).Info("serving HTTP")
	return http.ListenAndServe(h.laddr, h.Handler())
}

// rateLimit rejects requests beyond the limiter's rate with 429 Too
// Many Requests and the usual error envelope.
func rateLimit(limiter *rate.Limiter) negroni.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
		if limiter.Allow() {
			next(rw, req)
			return
		}
		rateLimited.Inc()
		rw.Header().Set("Content-Type", restdata.JSONMediaType)
		rw.WriteHeader(http.StatusTooManyRequests)
		_ = restdata.Encode(rw, restdata.ErrorResponse{
			Status: restdata.StatusError,
			Error:  "too many requests",
		})
	}
}
