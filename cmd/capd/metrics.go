// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"github.com/diffeo/go-cap/restserver"
	"github.com/prometheus/client_golang/prometheus"
)

var rateLimited = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "cap",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	},
)

func init() {
	prometheus.MustRegister(rateLimited)
	if err := restserver.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		panic(err)
	}
}
