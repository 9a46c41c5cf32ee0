// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diffeo/go-cap/memory"
	"github.com/diffeo/go-cap/restdata"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "capd")
	require.NoError(t, err)
	filename := filepath.Join(dir, "cap.yaml")
	require.NoError(t, ioutil.WriteFile(filename, []byte(content), 0644))
	return filename, func() { os.RemoveAll(dir) }
}

func TestLoadConfig(t *testing.T) {
	filename, cleanup := writeConfig(t, `
secret: s3cret
token_ttl: 90m
rate: 2.5
burst: 5
computers:
  - os: linux
    cpu: x86_64
    ram: 16
    ssh: root@10.0.0.1
  - os: windows
    cpu: arm64
    ram: 8
`)
	defer cleanup()

	config, err := loadConfigYaml(filename)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", config.Secret)
	assert.Equal(t, 90*time.Minute, config.TokenTTL)
	assert.Equal(t, 2.5, config.Rate)
	assert.Equal(t, 5, config.Burst)
	assert.Equal(t, []ComputerConfig{
		{OS: "linux", CPU: "x86_64", RAM: 16, SSH: "root@10.0.0.1"},
		{OS: "windows", CPU: "arm64", RAM: 8},
	}, config.Computers)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	filename, cleanup := writeConfig(t, "secert: typo\n")
	defer cleanup()

	_, err := loadConfigYaml(filename)
	assert.Error(t, err)
}

func TestRandomSecret(t *testing.T) {
	a, err := randomSecret()
	require.NoError(t, err)
	b, err := randomSecret()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestSeed(t *testing.T) {
	store := memory.New()
	computers := []ComputerConfig{
		{OS: "linux", CPU: "x86_64", RAM: 16, SSH: "root@10.0.0.1"},
		{OS: "windows", CPU: "arm64", RAM: 8, SSH: "root@10.0.0.2"},
	}

	added, err := seed(store, computers)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = seed(store, computers)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	all, err := store.Computers()
	require.NoError(t, err)
	if assert.Len(t, all, 2) {
		assert.Equal(t, "linux", all[0].OS)
		assert.True(t, all[0].Available)
		assert.Equal(t, "root@10.0.0.2", all[1].SSH)
	}
}

func TestHandlerServesAPIAndMetrics(t *testing.T) {
	h := &HTTP{store: memory.New(), config: Config{Secret: "x"}}
	server := httptest.NewServer(h.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/get_all")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, err := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "diffeo_cap_requests_total")
}

func TestRateLimit(t *testing.T) {
	h := &HTTP{
		store:  memory.New(),
		config: Config{Secret: "x", Rate: 0.001, Burst: 1},
	}
	handler := h.Handler()
	before := testutil.ToFloat64(rateLimited)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/get_all", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/get_all", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var out restdata.ErrorResponse
	if assert.NoError(t, restdata.Decode(rec.Header().Get("Content-Type"), rec.Body, &out)) {
		assert.Equal(t, restdata.ErrorResponse{Status: "Error", Error: "too many requests"}, out)
	}
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimited))
}

func TestRequestLogging(t *testing.T) {
	h := &HTTP{store: memory.New(), config: Config{Secret: "x"}, logRequests: true}
	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"userEmail": "a@b.c", "userPassword": "pw"}`)))
	// no Content-Type header
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
