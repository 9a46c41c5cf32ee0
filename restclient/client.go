// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides an access.API implementation that talks
// to the platform backend over HTTP.
//
// The server in github.com/diffeo/go-cap/cmd/capd runs a compatible
// backend.  Call New() with the base URL of that service; for
// instance,
//
//     c, err := restclient.New(restclient.Config{
//             BaseURL: "http://localhost:5000",
//     })
//     session, err := c.Register(ctx, "me@example.com", "pw", "user")
//     computers, err := c.GetAll(ctx, session.Token)
//
// Each call makes exactly one HTTP request, except Register which
// makes two.  Whether a response is a success is decided only by the
// presence of one marker field; see the restdata package for the
// list.  A response without its marker produces
// access.ErrInvalidShape, and a request that could not be completed
// produces access.ErrTransport.
package restclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restdata"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

// Client is an HTTP client for the platform.  It holds no session
// state and is safe for concurrent use.
type Client struct {
	resource
	log    logrus.FieldLogger
	strict bool
}

var _ access.API = (*Client)(nil)

// New creates a new client from a configuration.  It does not contact
// the backend.
func New(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if !url.IsAbs() || url.Host == "" {
		return nil, fmt.Errorf("base URL %q is not absolute", base)
	}
	c := &Client{
		resource: resource{URL: url, Client: cfg.HTTPClient},
		log:      cfg.Logger,
		strict:   cfg.StrictComputerList,
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c, nil
}

// errNotObject is the transport error for a reply body that decodes
// to JSON null.
var errNotObject = errors.New("response body is not a JSON object")

// call performs one request and returns the decoded response body.
// Any failure is logged and returned as access.ErrTransport.
func (c *Client) call(ctx context.Context, op, method, template string, vars map[string]interface{}, in interface{}) (restdata.DataDict, error) {
	var out restdata.DataDict
	var err error
	if method == "POST" {
		err = c.PostTo(ctx, template, vars, in, &out)
	} else {
		err = c.Get(ctx, template, vars, &out)
	}
	if err == nil && out == nil {
		err = errNotObject
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"op":  op,
			"err": err,
		}).Error("request failed")
		return nil, access.ErrTransport{Operation: op, Err: err}
	}
	return out, nil
}

// fill decodes the typed fields of a response into out.  The marker
// alone decides success, so a field that cannot be converted is only
// logged and left as its zero value.
func (c *Client) fill(op string, data restdata.DataDict, out interface{}) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err == nil {
		err = decoder.Decode(map[string]interface{}(data))
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"op":  op,
			"err": err,
		}).Warn("could not decode response fields")
	}
}

// CreateAccount registers a new user without logging in.
func (c *Client) CreateAccount(ctx context.Context, email, password, role string) (access.Registration, error) {
	const op = "register"
	req := restdata.RegisterRequest{Email: email, Password: password, Role: role}
	data, err := c.call(ctx, op, "POST", "/api/auth/register", nil, req)
	if err != nil {
		return access.Registration{}, err
	}
	if !data.Has(restdata.MarkerUserID) {
		return access.Registration{}, access.ErrInvalidShape{Operation: op, Field: restdata.MarkerUserID}
	}
	result := access.Registration{Data: data}
	c.fill(op, data, &result)
	return result, nil
}

// Register creates an account and logs in with the same credentials.
func (c *Client) Register(ctx context.Context, email, password, role string) (access.Session, error) {
	return access.Register(ctx, c, email, password, role)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (access.Session, error) {
	const op = "login"
	req := restdata.LoginRequest{Email: email, Password: password}
	data, err := c.call(ctx, op, "POST", "/api/auth/login", nil, req)
	if err != nil {
		return access.Session{}, err
	}
	if !data.Has(restdata.MarkerToken) {
		return access.Session{}, access.ErrInvalidShape{Operation: op, Field: restdata.MarkerToken}
	}
	result := access.Session{Data: data}
	c.fill(op, data, &result)
	return result, nil
}

// GetAll returns the backend's list of computers as it sent them.  If
// the response has no "computers" field, this returns an empty list
// and no error, unless the client is configured with
// StrictComputerList.
func (c *Client) GetAll(ctx context.Context, token string) ([]access.ComputerSummary, error) {
	const op = "get_all"
	data, err := c.call(ctx, op, "GET", "/api/get_all{?token}", map[string]interface{}{
		"token": token,
	}, nil)
	if err != nil {
		return nil, err
	}
	shapeErr := access.ErrInvalidShape{Operation: op, Field: restdata.MarkerComputers}
	raw, present := data[restdata.MarkerComputers]
	if !present {
		if c.strict {
			return nil, shapeErr
		}
		return nil, nil
	}
	if raw == nil {
		return []access.ComputerSummary{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, shapeErr
	}
	result := make([]access.ComputerSummary, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, shapeErr
		}
		result[i] = access.ComputerSummary(obj)
	}
	return result, nil
}

// GetComputer returns the details of one computer.
func (c *Client) GetComputer(ctx context.Context, id, token string) (access.Computer, error) {
	const op = "get_computer"
	data, err := c.call(ctx, op, "GET", "/api/get_computer{?id,token}", map[string]interface{}{
		"id":    id,
		"token": token,
	}, nil)
	if err != nil {
		return access.Computer{}, err
	}
	if !data.Has(restdata.MarkerSSH) {
		return access.Computer{}, access.ErrInvalidShape{Operation: op, Field: restdata.MarkerSSH}
	}
	result := access.Computer{Data: data}
	c.fill(op, data, &result)
	return result, nil
}

// reservation posts a reserve or relieve request.  It is true exactly
// when the response has a "reserved" field, whatever its value.
func (c *Client) reservation(ctx context.Context, op, id, token string) (bool, error) {
	req := restdata.ComputerRequest{ID: id, Token: token}
	data, err := c.call(ctx, op, "POST", "/api/"+op, nil, req)
	if err != nil {
		return false, err
	}
	if !data.Has(restdata.MarkerReserved) {
		return false, access.ErrInvalidShape{Operation: op, Field: restdata.MarkerReserved}
	}
	return true, nil
}

// ReserveComputer reserves a computer for the token's user.
func (c *Client) ReserveComputer(ctx context.Context, id, token string) (bool, error) {
	return c.reservation(ctx, "reserve_computer", id, token)
}

// RelieveComputer gives back a reserved computer.
func (c *Client) RelieveComputer(ctx context.Context, id, token string) (bool, error) {
	return c.reservation(ctx, "relieve_computer", id, token)
}
