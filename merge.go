package gk

import "github.com/pkg/errors"

// ErrUnequalEpsilon is returned by Merge when the two sketches were built
// with different epsilon values.
var ErrUnequalEpsilon = errors.New("cannot merge sketches with unequal epsilon values")

/*
Merge combines other into s in place. Both sketches must have been created
with the same epsilon; the merged sketch keeps the same rank error bound as
if every observation had been added to a single sketch directly.

Rather than replaying other's raw observations (which are gone), Merge
extracts an epsilon-approximate distribution from other's compressed
entries: consecutive (g, delta) pairs are turned into synthetic entries
whose g carries the rank gap between them, shrunk by other's rank spread so
the combined structure cannot claim more certainty than other actually had.
The first synthetic entry is anchored at other's minimum, the last at
other's largest entry, and entries whose computed gap is non-positive are
skipped. Feeding these through the normal compression yields the merged
summary in time linear in the number of entries rather than observations.

Aggregates are combined exactly from both sides' own running aggregates.
other is forced to compress but is otherwise left intact and never retained.
*/
func (s *Sketch) Merge(other *Sketch) error {
	if s.eps != other.eps {
		return ErrUnequalEpsilon
	}

	if other.count == 0 {
		s.compress(nil)
		return nil
	}

	if s.count == 0 {
		other.compress(nil)
		s.entries = append(s.entries[:0], other.entries...)
		s.count = other.count
		s.sum = other.sum
		s.mean = other.mean
		s.min = other.min
		s.max = other.max
		return nil
	}

	other.compress(nil)
	spread := int64(other.eps * float64(other.count-1))

	extra := make([]Entry, 0, len(other.entries)+1)
	if g := other.entries[0].G + other.entries[0].Delta - spread - 1; g > 0 {
		extra = append(extra, Entry{V: other.min, G: g})
	}
	for i := 0; i < len(other.entries)-1; i++ {
		if g := other.entries[i+1].G + other.entries[i+1].Delta - other.entries[i].Delta; g > 0 {
			extra = append(extra, Entry{V: other.entries[i].V, G: g})
		}
	}
	if g := spread + 1 - other.entries[len(other.entries)-1].Delta; g > 0 {
		extra = append(extra, Entry{V: other.entries[len(other.entries)-1].V, G: g})
	}

	total := s.count + other.count
	s.mean += (other.mean - s.mean) * float64(other.count) / float64(total)
	s.sum += other.sum
	s.count = total
	s.eps = maxFloat64(s.eps, other.eps)
	s.min = minFloat64(s.min, other.min)
	s.max = maxFloat64(s.max, other.max)

	s.compress(extra)
	return nil
}
