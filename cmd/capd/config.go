// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"io/ioutil"
	"time"

	"github.com/diffeo/go-cap/access"
	"gopkg.in/yaml.v2"
)

// Config is the daemon's global configuration file.
type Config struct {
	// Secret signs login tokens.  If empty, a random secret is
	// generated at startup, and tokens do not survive a restart.
	Secret string `yaml:"secret"`

	// TokenTTL is how long a login token stays valid.
	TokenTTL time.Duration `yaml:"token_ttl"`

	// Rate is the number of requests per second allowed across
	// all clients, with Burst extra.  Zero disables limiting.
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`

	// Computers are added to an empty store at startup.
	Computers []ComputerConfig `yaml:"computers"`
}

// ComputerConfig describes one computer to seed the store with.
type ComputerConfig struct {
	OS  string `yaml:"os"`
	CPU string `yaml:"cpu"`
	RAM int    `yaml:"ram"`
	SSH string `yaml:"ssh"`
}

func loadConfigYaml(filename string) (Config, error) {
	var result Config
	var err error
	var bytes []byte
	bytes, err = ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.UnmarshalStrict(bytes, &result)
	}
	return result, err
}

// randomSecret makes up a token signing secret.
func randomSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// seed adds the configured computers to store, but only if it has
// none yet, so that restarting against a persistent store does not
// duplicate them.  Returns the number of computers added.
func seed(store access.Store, computers []ComputerConfig) (int, error) {
	existing, err := store.Computers()
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	for i, c := range computers {
		_, err = store.AddComputer(access.ComputerSpec{
			OS:  c.OS,
			CPU: c.CPU,
			RAM: c.RAM,
			SSH: c.SSH,
		})
		if err != nil {
			return i, err
		}
	}
	return len(computers), nil
}
