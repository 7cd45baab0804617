// Package report renders benchmark results for a terminal and as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/Krishna8167/rangecache/internal/config"
	"github.com/Krishna8167/rangecache/internal/runner"
)

// Print writes the parameter, timing and cache blocks to w.
func Print(w io.Writer, cfg config.Config, res runner.Result) error {
	_, err := fmt.Fprintf(w, `=== Parameters ===
N=%d, Q=%d, K=%d, seed=%d
=== Results ===
No cache:        %.3f s
With LRU cache:  %.3f s
Speedup:         %.2fx
=== Cache stats ===
Hits: %d, Misses: %d, Hit-rate: %.1f%%
Evictions: %d, Invalidated: %d
`,
		cfg.N, cfg.Q, cfg.Capacity, cfg.Seed,
		res.NoCache.Elapsed.Seconds(),
		res.WithCache.Elapsed.Seconds(),
		res.Speedup,
		res.Stats.Hits, res.Stats.Misses, res.HitRate(),
		res.Stats.Evictions, res.Stats.Invalidations,
	)
	return err
}

// Document is the JSON form written by Save.
type Document struct {
	Config    DocumentConfig  `json:"config"`
	Results   DocumentResults `json:"results"`
	Timestamp string          `json:"timestamp"`
}

type DocumentConfig struct {
	N        int     `json:"n"`
	Q        int     `json:"q"`
	Capacity int     `json:"capacity"`
	Seed     uint64  `json:"seed"`
	HotPool  int     `json:"hot_pool"`
	PHot     float64 `json:"p_hot"`
	PUpdate  float64 `json:"p_update"`
}

type DocumentResults struct {
	NoCacheMS     float64 `json:"no_cache_ms"`
	WithCacheMS   float64 `json:"with_cache_ms"`
	Speedup       float64 `json:"speedup"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	HitRate       float64 `json:"hit_rate_percent"`
	Evictions     uint64  `json:"evictions"`
	Invalidations uint64  `json:"invalidations"`
	Ranges        int     `json:"ranges"`
	Updates       int     `json:"updates"`
	Checksum      int64   `json:"checksum"`
}

// NewDocument builds the JSON report for cfg and res stamped with now.
func NewDocument(cfg config.Config, res runner.Result, now time.Time) Document {
	speedup := res.Speedup
	// encoding/json rejects +Inf.
	if math.IsInf(speedup, 0) {
		speedup = 0
	}
	return Document{
		Config: DocumentConfig{
			N:        cfg.N,
			Q:        cfg.Q,
			Capacity: cfg.Capacity,
			Seed:     cfg.Seed,
			HotPool:  cfg.HotPool,
			PHot:     cfg.PHot,
			PUpdate:  cfg.PUpdate,
		},
		Results: DocumentResults{
			NoCacheMS:     ms(res.NoCache.Elapsed),
			WithCacheMS:   ms(res.WithCache.Elapsed),
			Speedup:       speedup,
			Hits:          res.Stats.Hits,
			Misses:        res.Stats.Misses,
			HitRate:       res.HitRate(),
			Evictions:     res.Stats.Evictions,
			Invalidations: res.Stats.Invalidations,
			Ranges:        res.WithCache.Ranges,
			Updates:       res.WithCache.Updates,
			Checksum:      res.WithCache.Checksum,
		},
		Timestamp: now.Format(time.RFC3339),
	}
}

// Save writes the indented JSON report to path.
func Save(path string, cfg config.Config, res runner.Result) error {
	data, err := json.MarshalIndent(NewDocument(cfg, res, time.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
