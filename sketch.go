package gk

import (
	"math"

	"github.com/pkg/errors"
)

/*
Sketch is a Greenwald-Khanna summary over a stream of float64 values. It
answers quantile queries within a relative rank error of epsilon while
storing a compressed subset of the observations: the value returned for a
quantile q has a true rank within epsilon*n of q*(n-1).

Exact running aggregates (count, sum, mean, min, max) are tracked outside
the compressed structure and are unaffected by compression.

A Sketch is not safe for concurrent use; callers must serialize access.
Merge additionally mutates its argument (it forces a compression), so the
argument must not be shared with concurrent writers for the duration of
the call.
*/
type Sketch struct {
	eps      float64
	entries  []Entry
	incoming *buffer

	count int64
	sum   float64
	mean  float64
	min   float64
	max   float64
}

// New returns an empty sketch with the given target rank error bound.
func New(eps float64) (*Sketch, error) {
	if eps <= 0 {
		return nil, errors.Errorf("epsilon must be positive, got %v", eps)
	}
	return &Sketch{
		eps:      eps,
		incoming: newBuffer(int64(1 / eps)),
		min:      math.Inf(1),
		max:      math.Inf(-1),
	}, nil
}

// Add a new value to the sketch.
func (s *Sketch) Add(v float64) {
	s.count++
	s.sum += v
	s.mean += (v - s.mean) / float64(s.count)
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
	s.incoming.push(v)
	if s.count%(int64(1/s.eps)+1) == 0 {
		s.compress(nil)
	}
}

// Size returns the number of compressed entries, flushing any buffered
// values first.
func (s *Sketch) Size() int {
	if s.incoming.size() > 0 {
		s.compress(nil)
	}
	return len(s.entries)
}

// Count returns the exact number of values added.
func (s *Sketch) Count() int64 {
	return s.count
}

// Sum returns the exact sum of all added values.
func (s *Sketch) Sum() float64 {
	return s.sum
}

// Mean returns the mean of all added values, maintained incrementally to
// stay numerically stable over long streams.
func (s *Sketch) Mean() float64 {
	return s.mean
}

// Min returns the exact minimum of all added values, or NaN if the sketch
// is empty.
func (s *Sketch) Min() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.min
}

// Max returns the exact maximum of all added values, or NaN if the sketch
// is empty.
func (s *Sketch) Max() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.max
}

// Epsilon returns the rank error bound the sketch currently guarantees.
// Merge widens it to the looser of the two sketches involved.
func (s *Sketch) Epsilon() float64 {
	return s.eps
}
