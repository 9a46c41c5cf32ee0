// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDataDict(t *testing.T) {
	body := `{"token": "abc", "nested": {"reserved": false}, "list": [{"id": "a"}]}`
	var dict DataDict
	err := Decode("application/json; charset=utf-8", strings.NewReader(body), &dict)
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, dict.Has("token"))
	assert.False(t, dict.Has("ssh"))
	assert.Equal(t, "abc", dict["token"])
	assert.Equal(t, map[string]interface{}{"reserved": false}, dict["nested"])
	assert.Equal(t, []interface{}{map[string]interface{}{"id": "a"}}, dict["list"])
}

func TestHasIgnoresValue(t *testing.T) {
	dict := DataDict{"reserved": false, "ssh": nil}
	assert.True(t, dict.Has("reserved"))
	assert.True(t, dict.Has("ssh"))
}

func TestDecodeMediaTypes(t *testing.T) {
	var dict DataDict
	err := Decode("text/json", strings.NewReader("{}"), &dict)
	assert.NoError(t, err)

	err = Decode("text/html", strings.NewReader("{}"), &dict)
	assert.Equal(t, ErrUnsupportedMediaType{Type: "text/html"}, err)

	err = Decode("", strings.NewReader("{}"), &dict)
	assert.Equal(t, ErrUnsupportedMediaType{Type: "application/octet-stream"}, err)

	err = Decode("application/json", strings.NewReader("{"), &dict)
	assert.Error(t, err)
}

func TestEncodeUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, RegisterRequest{Email: "a@b.c", Password: "pw", Role: "user"})
	if !assert.NoError(t, err) {
		return
	}
	var dict DataDict
	err = Decode(JSONMediaType, &buf, &dict)
	if assert.NoError(t, err) {
		assert.Equal(t, DataDict{
			"userEmail":    "a@b.c",
			"userPassword": "pw",
			"userRole":     "user",
		}, dict)
	}
}

func TestEncodeOmitsEmptySSH(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, AddComputerRequest{OS: "linux", CPU: "x86", RAM: 4})
	if assert.NoError(t, err) {
		assert.NotContains(t, buf.String(), "ssh")
	}
}
