// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command capd runs the Computer Access Platform backend.  It serves
// the REST API that the restclient package talks to, plus Prometheus
// metrics at /metrics.
//
//     capd -http :5000 -backend postgres:postgres://localhost/cap -config cap.yaml
//
// The configuration file is YAML:
//
//     secret: some long random string
//     token_ttl: 24h
//     rate: 50
//     burst: 100
//     computers:
//       - os: linux
//         cpu: x86_64
//         ram: 16
//         ssh: root@10.0.0.1
package main

import (
	"flag"

	"github.com/diffeo/go-cap/backend"
	"github.com/diffeo/go-cap/cache"
	"github.com/sirupsen/logrus"
)

func main() {
	var err error

	httpBind := flag.String("http", ":5000",
		"[ip]:port for HTTP REST interface")
	backend := backend.Backend{Implementation: "memory", Address: ""}
	flag.Var(&backend, "backend", "impl[:address] of the storage backend")
	configFile := flag.String("config", "", "global configuration YAML file")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	var config Config
	if *configFile != "" {
		config, err = loadConfigYaml(*configFile)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not load YAML configuration")
			return
		}
	}
	if config.Secret == "" {
		config.Secret, err = randomSecret()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not generate a token secret")
			return
		}
		logrus.Warn("No token secret configured; tokens will not survive a restart")
	}

	store, err := backend.Store()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err":     err,
			"backend": backend.String(),
		}).Fatal("Could not create storage backend")
		return
	}
	store = cache.New(store)

	added, err := seed(store, config.Computers)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not add configured computers")
		return
	}
	if added > 0 {
		logrus.WithFields(logrus.Fields{
			"computers": added,
		}).Info("Added configured computers")
	}

	h := &HTTP{
		store:       store,
		config:      config,
		laddr:       *httpBind,
		logRequests: *logRequests,
	}
	err = h.Serve()
	logrus.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server failed")
}
