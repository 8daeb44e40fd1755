package k2tree

import "github.com/postfix/k2trees/bitvector"

// BoolTree is the Boolean specialisation of the k²-tree: null is false,
// and the leaf layer L is stored as a packed bit sequence (via its own
// rank index) rather than a slice of values. Every query degenerates
// accordingly — countElements becomes rank1(L), and element-returning
// queries collapse to repeat-true lists.
type BoolTree struct {
	k, h, nPrime int
	rows, cols   int

	t  *bitvector.BitVector
	l  *bitvector.BitVector
	r  *bitvector.RankDictionary
	lr *bitvector.RankDictionary

	tainted bool
}

// GetK returns the branching factor.
func (tr *BoolTree) GetK() int { return tr.k }

// GetH returns the height of the conceptual tree.
func (tr *BoolTree) GetH() int { return tr.h }

// GetNumRows returns the number of rows of the original (unpadded) relation.
func (tr *BoolTree) GetNumRows() int { return tr.rows }

// GetNumCols returns the number of columns of the original (unpadded) relation.
func (tr *BoolTree) GetNumCols() int { return tr.cols }

// GetNull returns false, the Boolean specialisation's null element.
func (tr *BoolTree) GetNull() bool { return false }

// Clone returns a deep, independent copy. Both rank indexes are rebuilt
// against the clone's own copies of T and L, never sharing state with tr.
func (tr *BoolTree) Clone() *BoolTree {
	clone := &BoolTree{
		k: tr.k, h: tr.h, nPrime: tr.nPrime,
		rows: tr.rows, cols: tr.cols,
		tainted: tr.tainted,
	}
	clone.t = bitvector.NewBitVector(tr.t.Len())
	for i := 0; i < tr.t.Len(); i++ {
		clone.t.Set(i, tr.t.Get(i))
	}
	clone.l = bitvector.NewBitVector(tr.l.Len())
	for i := 0; i < tr.l.Len(); i++ {
		clone.l.Set(i, tr.l.Get(i))
	}
	clone.r = bitvector.BuildRank(clone.t)
	clone.lr = bitvector.BuildRank(clone.l)
	return clone
}

// Print emits the tree's parameters through Logger and, if all is set,
// the raw contents of T, L and the rank tables.
func (tr *BoolTree) Print(all bool) {
	ev := Logger.Info().
		Int("k", tr.k).Int("h", tr.h).Int("nPrime", tr.nPrime).
		Int("rows", tr.rows).Int("cols", tr.cols).
		Int("tLen", tr.t.Len()).Int("lLen", tr.l.Len()).
		Bool("tainted", tr.tainted)
	if !all {
		ev.Msg("k2tree")
		return
	}
	tBits := make([]bool, tr.t.Len())
	for i := range tBits {
		tBits[i] = tr.t.Get(i)
	}
	lBits := make([]bool, tr.l.Len())
	for i := range lBits {
		lBits[i] = tr.l.Get(i)
	}
	ev.Interface("T", tBits).Interface("L", lBits).Msg("k2tree")
}
