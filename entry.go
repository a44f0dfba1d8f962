package gk

// Entry is an element of the compressed summary. For the definition of g and
// delta, see the original paper
// http://infolab.stanford.edu/~datar/courses/cs361a/papers/quantiles.pdf
type Entry struct {
	V     float64
	G     int64
	Delta int64
}

// maxRank is the largest rank the entry may hold given the cumulative rank
// mass gSum of all entries up to and including it.
func (e Entry) maxRank(gSum int64) int64 {
	return gSum + e.Delta
}
