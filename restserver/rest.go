// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// Each route is a resourceHandler that knows how to extract a context
// from the request, decode and validate a body for POST, and call one
// function per HTTP method.  Handler functions return a value to be
// serialized or an error; errors are turned into an ErrorResponse
// with a status code picked by restdata.StatusFor().

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/diffeo/go-cap/restdata"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

var validate = validator.New()

type resourceHandler struct {
	// Name identifies the route in logs and metrics.
	Name string

	// Representation is the type of a POST body.  A new object of
	// this type is decoded, validated, and passed to Post.
	Representation interface{}

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*context, error)

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Post, if non-nil, takes some arbitrary action.  The
	// interface parameter is guaranteed to be the same type as
	// Representation.
	Post func(*context, interface{}) (interface{}, error)

	// Log receives one entry per failed request.
	Log logrus.FieldLogger
}

// decodeBody reads and validates a request body of the
// Representation's type.
func (h *resourceHandler) decodeBody(req *http.Request) (interface{}, error) {
	ptr := reflect.New(reflect.TypeOf(h.Representation))
	contentType := req.Header.Get("Content-Type")
	err := restdata.Decode(contentType, req.Body, ptr.Interface())
	if _, isStatus := err.(restdata.ErrorStatus); err != nil && !isStatus {
		err = restdata.ErrBadRequest{Err: err}
	}
	if err == nil {
		err = validate.Struct(ptr.Interface())
		if err != nil {
			err = restdata.ErrBadRequest{Err: err}
		}
	}
	if err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx    *context
		in     interface{}
		out    interface{}
		err    error
		status int
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			h.Log.WithFields(logrus.Fields{
				"route": h.Name,
				"panic": recovered,
			}).Error("handler panicked")
			response := restdata.ErrorResponse{
				Status: restdata.StatusError,
				Error:  "internal server error",
			}
			h.write(resp, http.StatusInternalServerError, response)
		}
	}()

	ctx, err = h.Context(req)

	if err == nil && req.Method == http.MethodPost && h.Post != nil {
		in, err = h.decodeBody(req)
	}

	if err == nil {
		err = errMethodNotAllowed{Method: req.Method}
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case http.MethodPost:
			if h.Post != nil {
				out, err = h.Post(ctx, in)
			}
		}
	}

	if err != nil {
		status = restdata.StatusFor(err)
		response := restdata.ErrorResponse{}
		response.FromError(err)
		out = response
		h.Log.WithFields(logrus.Fields{
			"route":  h.Name,
			"status": status,
			"err":    err,
		}).Info("request failed")
	} else {
		status = http.StatusOK
	}
	if req.Method == http.MethodHead {
		out = nil
	}
	h.write(resp, status, out)
}

// write sends a response.  By the time encoding can fail the status
// line is already out, so failures are only logged.
func (h *resourceHandler) write(resp http.ResponseWriter, status int, out interface{}) {
	requestCounter.WithLabelValues(h.Name, strconv.Itoa(status)).Inc()
	if out != nil {
		resp.Header().Set("Content-Type", restdata.JSONMediaType)
	}
	resp.WriteHeader(status)
	if out == nil {
		return
	}
	if err := restdata.Encode(resp, out); err != nil {
		h.Log.WithFields(logrus.Fields{
			"route": h.Name,
			"err":   err,
		}).Warn("could not write response")
	}
}
