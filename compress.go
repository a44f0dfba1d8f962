package gk

import "sort"

/*
compress folds the incoming buffer, plus the optional extra entries handed
over by Merge, into the compressed summary.

The candidate list and the resident entries are both sorted ascending by
value, so a single two-cursor sweep merges them. At each step the smaller
head is considered against its successor: if the pair satisfies

	left.G + right.G + right.Delta <= removalThreshold

the right entry absorbs the left one's rank mass and the left is dropped,
which is what keeps the summary sub-linear in the stream length. A candidate
inserted in front of a resident entry takes Delta = resident.G +
resident.Delta - candidate.G, the largest rank uncertainty its position
allows. Ties favor resident entries. No other mutation is permitted, so the
total rank mass of the output always equals the stream count.
*/
func (s *Sketch) compress(extra []Entry) {
	removalThreshold := int64(2 * s.eps * float64(s.count-1))

	incoming := s.incoming.generateEntryList()
	if len(extra) > 0 {
		incoming = append(incoming, extra...)
		sort.Slice(incoming, func(i, j int) bool { return incoming[i].V < incoming[j].V })
	}

	merged := make([]Entry, 0, len(incoming)+len(s.entries))
	i, j := 0, 0
	for i < len(incoming) || j < len(s.entries) {
		switch {
		case i == len(incoming):
			// done with incoming; now only considering resident entries
			if j+1 < len(s.entries) &&
				s.entries[j].G+s.entries[j+1].G+s.entries[j+1].Delta <= removalThreshold {
				s.entries[j+1].G += s.entries[j].G
			} else {
				merged = append(merged, s.entries[j])
			}
			j++
		case j == len(s.entries):
			// done with resident entries; now only considering incoming
			if i+1 < len(incoming) &&
				incoming[i].G+incoming[i+1].G+incoming[i+1].Delta <= removalThreshold {
				incoming[i+1].G += incoming[i].G
			} else {
				merged = append(merged, incoming[i])
			}
			i++
		case incoming[i].V < s.entries[j].V:
			if incoming[i].G+s.entries[j].G+s.entries[j].Delta <= removalThreshold {
				// removable: the resident entry absorbs the candidate
				s.entries[j].G += incoming[i].G
			} else {
				incoming[i].Delta = s.entries[j].G + s.entries[j].Delta - incoming[i].G
				merged = append(merged, incoming[i])
			}
			i++
		default:
			if j+1 < len(s.entries) &&
				s.entries[j].G+s.entries[j+1].G+s.entries[j+1].Delta <= removalThreshold {
				s.entries[j+1].G += s.entries[j].G
			} else {
				merged = append(merged, s.entries[j])
			}
			j++
		}
	}

	s.entries = merged
}
