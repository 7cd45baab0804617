package report

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishna8167/rangecache"
	"github.com/Krishna8167/rangecache/internal/config"
	"github.com/Krishna8167/rangecache/internal/runner"
)

func sampleResult() runner.Result {
	return runner.Result{
		NoCache:   runner.Pass{Elapsed: 2 * time.Second, Checksum: 10, Ranges: 90, Updates: 10},
		WithCache: runner.Pass{Elapsed: 500 * time.Millisecond, Checksum: 10, Ranges: 90, Updates: 10},
		Stats:     rangecache.Stats{Hits: 80, Misses: 10, Evictions: 2, Invalidations: 3},
		Speedup:   4,
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, config.Default(), sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "N=100000, Q=50000, K=1000, seed=42")
	assert.Contains(t, out, "No cache:        2.000 s")
	assert.Contains(t, out, "With LRU cache:  0.500 s")
	assert.Contains(t, out, "Speedup:         4.00x")
	assert.Contains(t, out, "Hits: 80, Misses: 10, Hit-rate: 88.9%")
	assert.Contains(t, out, "Evictions: 2, Invalidated: 3")
}

func TestNewDocument(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := NewDocument(config.Default(), sampleResult(), now)

	assert.Equal(t, "2026-01-02T03:04:05Z", doc.Timestamp)
	assert.Equal(t, 2000.0, doc.Results.NoCacheMS)
	assert.Equal(t, 500.0, doc.Results.WithCacheMS)
	assert.Equal(t, 1000, doc.Config.Capacity)
	assert.Equal(t, 90, doc.Results.Ranges)
}

func TestNewDocumentInfiniteSpeedup(t *testing.T) {
	res := sampleResult()
	res.Speedup = math.Inf(1)
	doc := NewDocument(config.Default(), res, time.Now())

	_, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Zero(t, doc.Results.Speedup)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, Save(path, config.Default(), sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, uint64(80), doc.Results.Hits)
	assert.Equal(t, uint64(42), doc.Config.Seed)
}

func TestSaveBadPath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "missing", "report.json"), config.Default(), sampleResult())
	assert.Error(t, err)
}
