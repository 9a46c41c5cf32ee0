// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var requestCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "cap",
		Name:      "requests_total",
		Help:      "REST requests by route and HTTP status",
	},
	[]string{
		"route",
		"status",
	},
)

var computerSummary = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "diffeo",
		Subsystem: "cap",
		Name:      "computers",
		Help:      "Number of computers by reservation state",
	},
	[]string{
		"state",
	},
)

// RegisterMetrics registers the REST service's metrics with r,
// typically prometheus.DefaultRegisterer.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{requestCounter, computerSummary} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observe recounts the computers in the store.
func (api *restAPI) observe() {
	computers, err := api.Store.Computers()
	if err != nil {
		api.Log.WithFields(logrus.Fields{
			"err": err,
		}).Warn("could not count computers")
		return
	}
	var available, reserved int
	for _, computer := range computers {
		if computer.Available {
			available++
		} else {
			reserved++
		}
	}
	computerSummary.With(prometheus.Labels{"state": "available"}).Set(float64(available))
	computerSummary.With(prometheus.Labels{"state": "reserved"}).Set(float64(reserved))
}
