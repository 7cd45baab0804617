// Package runner replays a query stream against an array, once directly
// and once through a rangecache.Cache, and compares the two passes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phuslu/log"

	"github.com/Krishna8167/rangecache"
	"github.com/Krishna8167/rangecache/internal/workload"
)

// ErrChecksumMismatch means the cached pass returned different sums than
// the direct pass, which happens when an update was not invalidated.
var ErrChecksumMismatch = errors.New("cached and uncached results differ")

// ctxCheckEvery is how many queries run between context checks.
const ctxCheckEvery = 1024

// RangeSum returns arr[l] + ... + arr[r].
func RangeSum(arr []int64, l, r int) int64 {
	var s int64
	for _, v := range arr[l : r+1] {
		s += v
	}
	return s
}

// Runner answers range queries through a cache and keeps it coherent
// across updates. It owns its array.
type Runner struct {
	arr   []int64
	cache *rangecache.Cache
}

// New returns a Runner over a private copy of arr.
func New(arr []int64, cache *rangecache.Cache) *Runner {
	return &Runner{arr: append([]int64(nil), arr...), cache: cache}
}

// Range returns the sum of [l, r], computing and caching it on a miss.
func (r *Runner) Range(left, right int) int64 {
	key := rangecache.Key{Left: left, Right: right}
	if sum, ok := r.cache.Get(key); ok {
		return sum
	}
	sum := RangeSum(r.arr, left, right)
	r.cache.Put(key, sum)
	return sum
}

// Update writes val at idx and drops every cached range covering idx.
func (r *Runner) Update(idx int, val int64) {
	r.arr[idx] = val
	r.cache.InvalidateIndex(idx)
}

// Pass is the outcome of replaying one query stream.
type Pass struct {
	Elapsed  time.Duration
	Checksum int64
	Ranges   int
	Updates  int
}

// Baseline replays queries on a copy of arr without any cache.
func Baseline(ctx context.Context, arr []int64, queries []workload.Query) (Pass, error) {
	work := append([]int64(nil), arr...)
	var p Pass

	start := time.Now()
	for i, q := range queries {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return p, err
			}
		}
		switch q.Kind {
		case workload.Range:
			p.Checksum += RangeSum(work, q.A, q.B)
			p.Ranges++
		case workload.Update:
			work[q.A] = int64(q.B)
			p.Updates++
		}
	}
	p.Elapsed = time.Since(start)
	return p, nil
}

// Cached replays queries on a copy of arr through cache.
func Cached(ctx context.Context, arr []int64, cache *rangecache.Cache, queries []workload.Query) (Pass, error) {
	r := New(arr, cache)
	var p Pass

	start := time.Now()
	for i, q := range queries {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return p, err
			}
		}
		switch q.Kind {
		case workload.Range:
			p.Checksum += r.Range(q.A, q.B)
			p.Ranges++
		case workload.Update:
			r.Update(q.A, int64(q.B))
			p.Updates++
		}
	}
	p.Elapsed = time.Since(start)
	return p, nil
}

// Result summarises a full benchmark run.
type Result struct {
	NoCache   Pass
	WithCache Pass
	Stats     rangecache.Stats
	Speedup   float64
}

// HitRate returns the cache hit rate as a percentage.
func (r Result) HitRate() float64 {
	return r.Stats.HitRate() * 100
}

// Run generates the workload described by params, runs both passes and
// checks that they agree. A nil logger discards progress messages.
func Run(ctx context.Context, rng *rand.Rand, params workload.Params, cache *rangecache.Cache, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
	}
	arr := workload.Array(rng, params.N, 1, 100)
	queries, err := workload.Generate(rng, params)
	if err != nil {
		return Result{}, err
	}
	logger.Info().Int("n", params.N).Int("q", len(queries)).Int("capacity", cache.Cap()).Msg("workload generated")

	base, err := Baseline(ctx, arr, queries)
	if err != nil {
		return Result{}, fmt.Errorf("runner: baseline pass: %w", err)
	}
	logger.Info().Dur("elapsed", base.Elapsed).Msg("baseline pass complete")

	cached, err := Cached(ctx, arr, cache, queries)
	if err != nil {
		return Result{}, fmt.Errorf("runner: cached pass: %w", err)
	}
	logger.Info().Dur("elapsed", cached.Elapsed).Msg("cached pass complete")

	if base.Checksum != cached.Checksum {
		return Result{}, fmt.Errorf("runner: %w: baseline %d, cached %d", ErrChecksumMismatch, base.Checksum, cached.Checksum)
	}

	res := Result{
		NoCache:   base,
		WithCache: cached,
		Stats:     cache.Stats(),
	}
	if cached.Elapsed > 0 {
		res.Speedup = float64(base.Elapsed) / float64(cached.Elapsed)
	} else {
		res.Speedup = math.Inf(1)
	}
	return res, nil
}
