// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"
	"reflect"

	"github.com/ugorji/go/codec"
)

// JSONMediaType is the MIME type of every request and response body.
const JSONMediaType = "application/json"

// JSONHandle returns the codec handle used for all encoding and
// decoding.  Objects decoded without a schema come back as
// map[string]interface{}, and lists as []interface{}.
func JSONHandle() *codec.JsonHandle {
	json := &codec.JsonHandle{}
	json.MapType = reflect.TypeOf(map[string]interface{}(nil))
	json.SliceType = reflect.TypeOf([]interface{}(nil))
	return json
}

// Decode tries to decode an object from a reader, such as an HTTP
// request or response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrBadRequest{Err: err}
	}

	switch mediaType {
	case "text/json", JSONMediaType:
		decoder := codec.NewDecoder(r, JSONHandle())
		return decoder.Decode(out)
	default:
		return ErrUnsupportedMediaType{Type: mediaType}
	}
}

// Encode writes an object as JSON.
func Encode(w io.Writer, in interface{}) error {
	encoder := codec.NewEncoder(w, JSONHandle())
	return encoder.Encode(in)
}
