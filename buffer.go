package gk

import "sort"

// buffer holds raw observations until the next compression folds them into
// the compressed summary. Values are kept unsorted on insert.
type buffer struct {
	vals []float64
}

func newBuffer(capacity int64) *buffer {
	// preallocate for better insert throughput
	return &buffer{vals: make([]float64, 0, capacity)}
}

// push appends a raw value.
func (b *buffer) push(v float64) {
	b.vals = append(b.vals, v)
}

// size returns the number of buffered values.
func (b *buffer) size() int {
	return len(b.vals)
}

// generateEntryList returns the buffered values as sorted unit entries and
// clears the buffer. Callers should minimize how often this is called,
// ideally only right before a compression.
func (b *buffer) generateEntryList() []Entry {
	sort.Float64s(b.vals)
	ret := make([]Entry, len(b.vals))
	for i, v := range b.vals {
		ret[i] = Entry{V: v, G: 1}
	}
	b.vals = b.vals[:0]
	return ret
}
