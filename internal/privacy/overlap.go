package privacy

// claimedRange is one accepted [start, end) span, tagged with the rule
// that won it.
type claimedRange struct {
	start  int
	end    int
	typeID string
}

// rangeSet tracks spans already claimed by accepted structured findings
// within a single scan. Priority is encoded purely by processing order:
// whichever rule claims a span first keeps it, and later candidates that
// intersect it are rejected. The set is local to one Detect call, so no
// locking is needed.
type rangeSet struct {
	claimed []claimedRange
}

func newRangeSet() *rangeSet {
	return &rangeSet{}
}

// tryClaim accepts the candidate span only if it is disjoint from every
// previously accepted span.
func (rs *rangeSet) tryClaim(start, end int, typeID string) bool {
	for _, r := range rs.claimed {
		if !(end <= r.start || start >= r.end) {
			return false
		}
	}
	rs.claimed = append(rs.claimed, claimedRange{start: start, end: end, typeID: typeID})
	return true
}
