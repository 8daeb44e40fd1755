package k2tree

import "github.com/postfix/k2trees/bitvector"

// Tree is the generic valued k²-tree over element domain E. It owns two
// bit/element layers (t, l), a rank index r over t, and the four scalar
// parameters (k, h, nPrime, null) describing the padded square it covers.
//
// A freshly constructed Tree is in the "fresh" state: every query,
// including the containsElement full-subtree shortcut, is authoritative.
// Once SetNull has cleared a non-null cell, tainted is set and
// ContainsElement falls back to an always-correct descent.
type Tree[E comparable] struct {
	k, h, nPrime int
	rows, cols   int
	null         E

	t *bitvector.BitVector
	l []E
	r *bitvector.RankDictionary

	tainted bool
}

// GetK returns the branching factor.
func (tr *Tree[E]) GetK() int { return tr.k }

// GetH returns the height of the conceptual tree.
func (tr *Tree[E]) GetH() int { return tr.h }

// GetNumRows returns the number of rows of the original (unpadded) relation.
func (tr *Tree[E]) GetNumRows() int { return tr.rows }

// GetNumCols returns the number of columns of the original (unpadded) relation.
func (tr *Tree[E]) GetNumCols() int { return tr.cols }

// GetNull returns the distinguished null element.
func (tr *Tree[E]) GetNull() E { return tr.null }

// Clone returns a deep, independent copy. The clone's rank index is
// rebuilt against its own copy of T, never sharing state with tr.
func (tr *Tree[E]) Clone() *Tree[E] {
	clone := &Tree[E]{
		k: tr.k, h: tr.h, nPrime: tr.nPrime,
		rows: tr.rows, cols: tr.cols, null: tr.null,
		tainted: tr.tainted,
	}
	clone.t = bitvector.NewBitVector(tr.t.Len())
	for i := 0; i < tr.t.Len(); i++ {
		clone.t.Set(i, tr.t.Get(i))
	}
	clone.l = append([]E(nil), tr.l...)
	clone.r = bitvector.BuildRank(clone.t)
	return clone
}

// Print emits the tree's parameters through Logger and, if all is set,
// the raw contents of T, L and the rank table.
func (tr *Tree[E]) Print(all bool) {
	ev := Logger.Info().
		Int("k", tr.k).Int("h", tr.h).Int("nPrime", tr.nPrime).
		Int("rows", tr.rows).Int("cols", tr.cols).
		Int("tLen", tr.t.Len()).Int("lLen", len(tr.l)).
		Bool("tainted", tr.tainted)
	if !all {
		ev.Msg("k2tree")
		return
	}
	tBits := make([]bool, tr.t.Len())
	for i := range tBits {
		tBits[i] = tr.t.Get(i)
	}
	ev.Interface("T", tBits).Interface("L", tr.l).Msg("k2tree")
}
