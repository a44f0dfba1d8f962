package gk

import (
	"math"
	"sort"
)

// Quantile returns an epsilon-approximate element at quantile q, for q in
// [0, 1]. It returns NaN when q is out of range or the sketch is empty.
func (s *Sketch) Quantile(q float64) float64 {
	if q < 0 || q > 1 || s.count == 0 {
		return math.NaN()
	}

	if s.incoming.size() > 0 {
		s.compress(nil)
	}

	// With fewer than 1/eps values nothing has been coalesced yet, so the
	// entries hold the exact sorted sample and no approximation is needed.
	if float64(s.count) < 1/s.eps {
		return s.interpolatedQuantile(q)
	}

	rank := int64(q*float64(s.count-1)) + 1
	spread := int64(s.eps * float64(s.count-1))
	var gSum int64
	i := 0
	for ; i < len(s.entries); i++ {
		gSum += s.entries[i].G
		// minimum rank is 0 but gSum starts from 1, hence the -1
		if s.entries[i].maxRank(gSum)-1 > rank+spread {
			break
		}
	}
	if i == 0 {
		return s.min
	}
	return s.entries[i-1].V
}

// Quantiles is the batch form of Quantile: it returns one approximate
// element per requested quantile, same length and order as qs. Sorted input
// is answered with a single pass over the entries; unsorted input degrades
// to one Quantile call per element. Out-of-range quantiles yield NaN at
// their position.
func (s *Sketch) Quantiles(qs []float64) []float64 {
	res := make([]float64, 0, len(qs))
	if s.count == 0 {
		for range qs {
			res = append(res, math.NaN())
		}
		return res
	}

	if s.incoming.size() > 0 {
		s.compress(nil)
	}

	if float64(s.count) < 1/s.eps {
		for _, q := range qs {
			if q < 0 || q > 1 {
				res = append(res, math.NaN())
			} else {
				res = append(res, s.interpolatedQuantile(q))
			}
		}
		return res
	}

	if !sort.Float64sAreSorted(qs) {
		for _, q := range qs {
			res = append(res, s.Quantile(q))
		}
		return res
	}

	spread := int64(s.eps * float64(s.count-1))
	var gSum int64
	i, j := 0, 0
	for i < len(s.entries) && j < len(qs) {
		gSum += s.entries[i].G
		for j < len(qs) {
			if qs[j] < 0 || qs[j] > 1 {
				res = append(res, math.NaN())
				j++
			} else if rank := int64(qs[j]*float64(s.count-1)) + 1; s.entries[i].maxRank(gSum)-1 > rank+spread {
				if i == 0 {
					res = append(res, s.min)
				} else {
					res = append(res, s.entries[i-1].V)
				}
				j++
			} else {
				break
			}
		}
		i++
	}
	// quantiles beyond the last satisfiable entry resolve to the maximum
	for ; j < len(qs); j++ {
		if qs[j] < 0 || qs[j] > 1 {
			res = append(res, math.NaN())
		} else {
			res = append(res, s.max)
		}
	}
	return res
}

// interpolatedQuantile returns the exact linear-interpolated element at
// quantile q. Only valid while count < 1/eps, when every entry still has
// G = 1 and Delta = 0.
func (s *Sketch) interpolatedQuantile(q float64) float64 {
	rank := q * float64(s.count-1)
	below := int(rank)
	above := below + 1
	if above > int(s.count)-1 {
		above = int(s.count) - 1
	}
	weightAbove := rank - float64(below)
	return (1-weightAbove)*s.entries[below].V + weightAbove*s.entries[above].V
}
