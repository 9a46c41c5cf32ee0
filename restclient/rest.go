// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// This file provides generic REST client code.

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/diffeo/go-cap/restdata"
	"github.com/jtacoma/uritemplates"
	"github.com/ugorji/go/codec"
)

// resource is any object that has a base URL and a way to reach it.
type resource struct {
	URL    *url.URL
	Client *http.Client
}

// Template expands a URI template and returns it as a URL under the
// resource's base URL.  The template's path is appended to the base
// path, so a base URL of "http://host/prefix" and a template of
// "/api/get_all" produce "http://host/prefix/api/get_all".
func (r *resource) Template(template string, vars map[string]interface{}) (*url.URL, error) {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return nil, err
	}

	if vars == nil {
		vars = map[string]interface{}{}
	}
	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return nil, err
	}

	return r.URL.Parse(strings.TrimSuffix(r.URL.Path, "/") + expanded)
}

// Do performs some HTTP action.  If in is non-nil, the request data is
// serialized and sent as the body of, for instance, a POST request.
// If out is non-nil, the response data (if any) is deserialized into
// this object, which must be of pointer type.
func (r *resource) Do(ctx context.Context, method string, url *url.URL, in, out interface{}) (err error) {
	// Set up the body as serialized JSON, if there is one
	var body io.Reader
	if in != nil {
		reader, writer := io.Pipe()
		encoder := codec.NewEncoder(writer, restdata.JSONHandle())
		finished := make(chan error)
		go func() {
			err := encoder.Encode(in)
			err = firstError(err, writer.Close())
			finished <- err
		}()
		defer func() {
			// If the request failed before the body was
			// consumed, unblock the encoder.
			_ = reader.Close()
			err = firstError(err, <-finished)
		}()
		body = reader
	}

	// Create the request and set headers
	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", restdata.JSONMediaType)
	}
	if out != nil {
		req.Header.Set("Accept", restdata.JSONMediaType)
	}

	// Actually do the request
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	// If the response included a body, clean up afterwards
	if resp.Body != nil {
		defer func() {
			err = firstError(err, resp.Body.Close())
		}()
	}

	// Check the response code
	if err = checkHTTPStatus(resp); err != nil {
		return err
	}

	// If there is both a body and a requested output,
	// decode it
	if resp.Body != nil && out != nil {
		err = decodeReply(resp.Body, out)
	}

	return err // may be nil
}

// Get retrieves a resource from a URL template under the base URL.
// The result is stored in out, which must be of pointer type.
func (r *resource) Get(ctx context.Context, template string, vars map[string]interface{}, out interface{}) error {
	url, err := r.Template(template, vars)
	if err == nil {
		err = r.Do(ctx, "GET", url, nil, out)
	}
	return err
}

// PostTo submits data to a URL template under the base URL.  The
// server response is stored in out, which must be of pointer type.
func (r *resource) PostTo(ctx context.Context, template string, vars map[string]interface{}, in, out interface{}) error {
	url, err := r.Template(template, vars)
	if err == nil {
		err = r.Do(ctx, "POST", url, in, out)
	}
	return err
}

// ErrorHTTP is a catch-all error for non-successes returned from the
// REST endpoint.
type ErrorHTTP struct {
	// Response holds a pointer to the failing HTTP response.
	Response *http.Response

	// Body holds the contents of the message body, presumed to
	// be text.
	Body string
}

func (e ErrorHTTP) Error() string {
	return e.Response.Status
}

// checkHTTPStatus examines an HTTP response and returns an error if
// it is not successful.
func checkHTTPStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Always collect the entire body; we will need it as a fallback
	// and can only parse it once.
	var body []byte
	var err error
	if resp.Body != nil {
		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
	}

	// Take a shot at decoding it as a better error
	var errResp restdata.ErrorResponse
	err2 := decodeReply(bytes.NewReader(body), &errResp)
	if err2 == nil && errResp.Error != "" {
		// Given that we decoded that successfully, return the
		// server-provided error
		return errResp.ToError()
	}

	return ErrorHTTP{Response: resp, Body: string(body)}
}

// decodeReply parses a response body as JSON.  Servers do not always
// label their replies, so unlike the server side this ignores the
// response Content-Type.
func decodeReply(r io.Reader, out interface{}) error {
	return codec.NewDecoder(r, restdata.JSONHandle()).Decode(out)
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
