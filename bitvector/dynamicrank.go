package bitvector

// DynamicRank is a naive, correctness-first rank-1 oracle over a growing
// bit sequence. It backs the online construction mode where T grows by
// insertions of runs of zero bits and by individual zero→one flips. A
// tree-based counter would be the natural performance upgrade; a plain
// O(n) update is sufficient for correctness here.
type DynamicRank struct {
	ranks []int // ranks[i] = rank1(i), one entry per bit plus a leading 0
}

// NewDynamicRank builds a dynamic rank oracle over the given bit slice.
func NewDynamicRank(bits []bool) *DynamicRank {
	d := &DynamicRank{ranks: make([]int, len(bits)+1)}
	total := 0
	for i, b := range bits {
		d.ranks[i] = total
		if b {
			total++
		}
	}
	d.ranks[len(bits)] = total
	return d
}

// Rank1 returns the number of set bits in [0, i).
func (d *DynamicRank) Rank1(i int) int {
	return d.ranks[i]
}

// IncreaseFrom increments every rank value from pos onward by one,
// signalling that a zero→one flip happened at position pos-1.
func (d *DynamicRank) IncreaseFrom(pos int) {
	for i := pos; i < len(d.ranks); i++ {
		d.ranks[i]++
	}
}

// InsertZeros inserts count zero bits at pos, which does not change the
// rank of anything before pos, replicates the rank at pos across the new
// positions, and leaves every subsequent rank value untouched (the new
// bits contribute no set bits).
func (d *DynamicRank) InsertZeros(pos, count int) {
	inserted := make([]int, count)
	base := d.ranks[pos]
	for i := range inserted {
		inserted[i] = base
	}
	d.ranks = append(d.ranks[:pos], append(inserted, d.ranks[pos:]...)...)
}
