package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishna8167/rangecache"
)

func TestHealth(t *testing.T) {
	s := NewServer("127.0.0.1:0", NewRegistry())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetricsExportsCacheCollectors(t *testing.T) {
	reg := NewRegistry()
	c, err := rangecache.New(4, rangecache.WithMetrics(reg, "bench"))
	require.NoError(t, err)
	c.Put(rangecache.Key{Left: 0, Right: 1}, 3)
	c.Get(rangecache.Key{Left: 0, Right: 1})

	s := NewServer("127.0.0.1:0", reg)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `rangecache_hits_total{component="bench"} 1`)
	assert.Contains(t, body, `rangecache_capacity{component="bench"} 4`)
	assert.Contains(t, body, "go_goroutines")
}

func TestStartAndStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", NewRegistry())
	require.NoError(t, s.Start(nil))
	require.NoError(t, s.Stop(context.Background()))
}

func TestStartBindError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	s := NewServer(ts.Listener.Addr().String(), NewRegistry())
	err := s.Start(nil)
	assert.Error(t, err)
}

func TestServeOverTCP(t *testing.T) {
	reg := NewRegistry()
	ts := httptest.NewServer(NewServer("", reg).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}
