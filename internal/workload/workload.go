// Package workload generates seeded arrays and query streams for the
// range-sum benchmark.
package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidParams is wrapped by Params.Validate failures.
var ErrInvalidParams = errors.New("invalid workload parameters")

// Kind distinguishes range queries from point updates.
type Kind uint8

const (
	Range Kind = iota
	Update
)

func (k Kind) String() string {
	switch k {
	case Range:
		return "Range"
	case Update:
		return "Update"
	default:
		return "unknown"
	}
}

// Query is one step of the benchmark. For Range, A and B are the inclusive
// bounds. For Update, A is the index and B the new value.
type Query struct {
	Kind Kind
	A    int
	B    int
}

// Params controls query generation.
type Params struct {
	N       int     // array length
	Q       int     // number of queries
	HotPool int     // number of frequently repeated ranges
	PHot    float64 // probability a range query comes from the hot pool
	PUpdate float64 // probability a query is an update
}

// Validate checks that Params describes a generatable workload.
func (p Params) Validate() error {
	switch {
	case p.N < 1:
		return fmt.Errorf("%w: array length %d", ErrInvalidParams, p.N)
	case p.Q < 0:
		return fmt.Errorf("%w: query count %d", ErrInvalidParams, p.Q)
	case p.HotPool < 1:
		return fmt.Errorf("%w: hot pool size %d", ErrInvalidParams, p.HotPool)
	case p.PHot < 0 || p.PHot > 1:
		return fmt.Errorf("%w: hot probability %v", ErrInvalidParams, p.PHot)
	case p.PUpdate < 0 || p.PUpdate > 1:
		return fmt.Errorf("%w: update probability %v", ErrInvalidParams, p.PUpdate)
	}
	return nil
}

// NewRand returns the deterministic source used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Array returns n values drawn uniformly from [lo, hi].
func Array(rng *rand.Rand, n int, lo, hi int64) []int64 {
	arr := make([]int64, n)
	span := hi - lo + 1
	for i := range arr {
		arr[i] = lo + rng.Int64N(span)
	}
	return arr
}

// Generate builds a query stream. A fixed pool of hot ranges, each
// spanning the middle of the array, receives most of the range traffic;
// the rest are cold ranges drawn uniformly.
func Generate(rng *rand.Rand, p Params) ([]Query, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	half := p.N / 2
	hot := make([]Query, p.HotPool)
	for i := range hot {
		hot[i] = Query{
			Kind: Range,
			A:    between(rng, 0, half),
			B:    between(rng, half, p.N-1),
		}
	}

	queries := make([]Query, 0, p.Q)
	for i := 0; i < p.Q; i++ {
		if rng.Float64() < p.PUpdate {
			queries = append(queries, Query{
				Kind: Update,
				A:    between(rng, 0, p.N-1),
				B:    between(rng, 1, 100),
			})
			continue
		}

		if rng.Float64() < p.PHot {
			queries = append(queries, hot[rng.IntN(len(hot))])
			continue
		}

		left := between(rng, 0, p.N-1)
		queries = append(queries, Query{
			Kind: Range,
			A:    left,
			B:    between(rng, left, p.N-1),
		})
	}
	return queries, nil
}

// between returns a uniform int in the closed interval [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
