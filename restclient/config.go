// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"io/ioutil"
	"net/http"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// DefaultBaseURL is the backend address used when Config.BaseURL is
// empty.
const DefaultBaseURL = "http://localhost:5000"

// Config describes how to reach the backend.  The zero value talks to
// DefaultBaseURL with http.DefaultClient.
type Config struct {
	// BaseURL is the scheme, host, and optional path prefix of
	// the backend.
	BaseURL string `yaml:"base_url"`

	// HTTPClient performs requests.  Timeouts, if any, belong
	// here.
	HTTPClient *http.Client `yaml:"-"`

	// Logger receives one error entry per transport failure.
	Logger logrus.FieldLogger `yaml:"-"`

	// StrictComputerList makes GetAll fail with an invalid shape
	// error when the response has no "computers" field, instead
	// of returning an empty list.
	StrictComputerList bool `yaml:"strict_computer_list"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(filename string) (Config, error) {
	var result Config
	var err error
	var bytes []byte
	bytes, err = ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}
