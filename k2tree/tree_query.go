package k2tree

// empty reports whether the relation is entirely null: T and L are both
// of size zero. h == 1 trees carry a non-empty L with no T at all, so L
// alone (not T) is the discriminator.
func (tr *Tree[E]) empty() bool { return len(tr.l) == 0 }

// descend follows set bits of T from the root toward cell (i, j),
// returning the position within L of the cell the walk ends on and
// whether it reached an L cell (as opposed to stopping on a zero T bit).
// pos is meaningful only when ok is true.
func (tr *Tree[E]) descend(i, j int) (pos int, ok bool) {
	if tr.empty() {
		return 0, false
	}
	n := tr.nPrime
	p, q := i, j
	base := 0
	for level := 1; level < tr.h; level++ {
		n1 := n / tr.k
		z := base + (p/n1)*tr.k + q/n1
		if !tr.t.Get(z) {
			return 0, false
		}
		base = tr.r.Rank1(z+1) * tr.k * tr.k
		n = n1
		p, q = p%n1, q%n1
	}
	local := p*tr.k + q
	return base + local - tr.t.Len(), true
}

// IsNotNull reports whether (i, j) holds a non-null value.
func (tr *Tree[E]) IsNotNull(i, j int) bool {
	pos, ok := tr.descend(i, j)
	if !ok {
		return false
	}
	return tr.l[pos] != tr.null
}

// AreRelated is an alias for IsNotNull using relation nomenclature.
func (tr *Tree[E]) AreRelated(i, j int) bool { return tr.IsNotNull(i, j) }

// GetElement returns the value stored at (i, j), or null if absent.
func (tr *Tree[E]) GetElement(i, j int) E {
	pos, ok := tr.descend(i, j)
	if !ok {
		return tr.null
	}
	return tr.l[pos]
}

// GetSuccessorPositions returns, in ascending order, every column j such
// that (i, j) holds a non-null value.
func (tr *Tree[E]) GetSuccessorPositions(i int) []int {
	var cols []int
	tr.forEachSuccessor(i, func(j int, _ E) { cols = append(cols, j) })
	return cols
}

// GetSuccessorElements returns the non-null values of row i, in column
// order.
func (tr *Tree[E]) GetSuccessorElements(i int) []E {
	var vals []E
	tr.forEachSuccessor(i, func(_ int, v E) { vals = append(vals, v) })
	return vals
}

// GetSuccessorValuedPositions returns every (row=i, col, value) triple
// with value non-null, in column order.
func (tr *Tree[E]) GetSuccessorValuedPositions(i int) []Triple[E] {
	var out []Triple[E]
	tr.forEachSuccessor(i, func(j int, v E) { out = append(out, Triple[E]{Row: i, Col: j, Value: v}) })
	return out
}

// GetSuccessors is an alias for GetSuccessorPositions.
func (tr *Tree[E]) GetSuccessors(i int) []int { return tr.GetSuccessorPositions(i) }

// successorFrame is one entry of the iterative level-by-level queue
// GetSuccessor* walks: dq is the accumulated column offset of the block
// this (z, n) pair covers, p is the row residual within it.
type successorFrame struct {
	z, n, dq, p int
}

func (tr *Tree[E]) forEachSuccessor(i int, visit func(j int, v E)) {
	if tr.empty() {
		return
	}
	if tr.h == 1 {
		for q := 0; q < tr.k; q++ {
			v := tr.l[i*tr.k+q]
			if v != tr.null {
				visit(q, v)
			}
		}
		return
	}

	queue := []successorFrame{{z: -1, n: tr.nPrime, dq: 0, p: i}}
	for len(queue) > 0 {
		fr := queue[0]
		queue = queue[1:]

		base := 0
		if fr.z >= 0 {
			base = tr.r.Rank1(fr.z+1) * tr.k * tr.k
		}

		n1 := fr.n / tr.k
		row := fr.p / n1
		pRes := fr.p % n1

		leafLevel := fr.n == tr.k
		for col := 0; col < tr.k; col++ {
			childZ := base + row*tr.k + col
			dqChild := fr.dq + col*n1
			if leafLevel {
				pos := childZ - tr.t.Len()
				v := tr.l[pos]
				if v != tr.null {
					visit(dqChild+pRes, v)
				}
				continue
			}
			if !tr.t.Get(childZ) {
				continue
			}
			queue = append(queue, successorFrame{z: childZ, n: n1, dq: dqChild, p: pRes})
		}
	}
}

// GetPredecessorPositions returns, in ascending order, every row i such
// that (i, j) holds a non-null value.
func (tr *Tree[E]) GetPredecessorPositions(j int) []int {
	var rows []int
	tr.forEachPredecessor(j, func(i int, _ E) { rows = append(rows, i) })
	return rows
}

// GetPredecessorElements returns the non-null values of column j, in row
// order.
func (tr *Tree[E]) GetPredecessorElements(j int) []E {
	var vals []E
	tr.forEachPredecessor(j, func(_ int, v E) { vals = append(vals, v) })
	return vals
}

// GetPredecessorValuedPositions returns every (row, col=j, value) triple
// with value non-null, in row order.
func (tr *Tree[E]) GetPredecessorValuedPositions(j int) []Triple[E] {
	var out []Triple[E]
	tr.forEachPredecessor(j, func(i int, v E) { out = append(out, Triple[E]{Row: i, Col: j, Value: v}) })
	return out
}

// GetPredecessors is an alias for GetPredecessorPositions.
func (tr *Tree[E]) GetPredecessors(j int) []int { return tr.GetPredecessorPositions(j) }

// forEachPredecessor is the recursive, row-symmetric twin of
// forEachSuccessor.
func (tr *Tree[E]) forEachPredecessor(j int, visit func(i int, v E)) {
	if tr.empty() {
		return
	}
	if tr.h == 1 {
		for p := 0; p < tr.k; p++ {
			v := tr.l[p*tr.k+j]
			if v != tr.null {
				visit(p, v)
			}
		}
		return
	}
	var recurse func(z, n, dp, q int)
	recurse = func(z, n, dp, q int) {
		var base int
		if z < 0 {
			base = 0
		} else {
			if !tr.t.Get(z) {
				return
			}
			base = tr.r.Rank1(z+1) * tr.k * tr.k
		}
		n1 := n / tr.k
		col := q / n1
		qRes := q % n1
		leafLevel := n == tr.k
		for row := 0; row < tr.k; row++ {
			childZ := base + row*tr.k + col
			dpChild := dp + row*n1
			if leafLevel {
				pos := childZ - tr.t.Len()
				v := tr.l[pos]
				if v != tr.null {
					visit(dpChild+qRes, v)
				}
				continue
			}
			if !tr.t.Get(childZ) {
				continue
			}
			recurse(childZ, n1, dpChild, qRes)
		}
	}
	recurse(-1, tr.nPrime, 0, j)
}

// GetFirstSuccessor returns the smallest j such that (i, j) is non-null,
// or n' if none exists.
func (tr *Tree[E]) GetFirstSuccessor(i int) int {
	if tr.empty() {
		return tr.nPrime
	}
	if tr.h == 1 {
		for q := 0; q < tr.k; q++ {
			if tr.l[i*tr.k+q] != tr.null {
				return q
			}
		}
		return tr.nPrime
	}

	type frame struct{ z, n, dq, p, col int }
	stack := []frame{{z: -1, n: tr.nPrime, dq: 0, p: i, col: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		base := 0
		if top.z >= 0 {
			base = tr.r.Rank1(top.z+1) * tr.k * tr.k
		}
		n1 := top.n / tr.k
		row := top.p / n1

		if top.col >= tr.k {
			stack = stack[:len(stack)-1]
			continue
		}
		col := top.col
		top.col++
		childZ := base + row*tr.k + col
		dqChild := top.dq + col*n1
		pRes := top.p % n1

		if top.n == tr.k {
			pos := childZ - tr.t.Len()
			if tr.l[pos] != tr.null {
				return dqChild + pRes
			}
			continue
		}
		if !tr.t.Get(childZ) {
			continue
		}
		stack = append(stack, frame{z: childZ, n: n1, dq: dqChild, p: pRes, col: 0})
	}
	return tr.nPrime
}

// forEachInRange descends only into sub-blocks overlapping [i1,i2]x[j1,j2],
// calling visit once per non-null cell found. When useShortcut is true,
// any internal node whose sub-range covers its current block in full and
// whose presence bit is set is reported as a hit immediately, without
// descending further (ContainsElement's "fully covered, present
// subtree" shortcut).
func (tr *Tree[E]) forEachInRange(i1, i2, j1, j2 int, visit func(i, j int, v E), useShortcut bool) bool {
	if tr.empty() {
		return false
	}
	var recurse func(z, n, rowBase, colBase, p1, p2, q1, q2 int) bool
	recurse = func(z, n, rowBase, colBase, p1, p2, q1, q2 int) bool {
		base := 0
		if z >= 0 {
			if !tr.t.Get(z) {
				return false
			}
			if useShortcut && p1 == 0 && q1 == 0 && p2 == n-1 && q2 == n-1 {
				return true
			}
			base = tr.r.Rank1(z+1) * tr.k * tr.k
		}

		n1 := n / tr.k
		leafLevel := n == tr.k
		rowLo, rowHi := p1/n1, p2/n1
		colLo, colHi := q1/n1, q2/n1

		for row := rowLo; row <= rowHi; row++ {
			pLo, pHi := 0, n1-1
			if row == rowLo {
				pLo = p1 % n1
			}
			if row == rowHi {
				pHi = p2 % n1
			}
			for col := colLo; col <= colHi; col++ {
				qLo, qHi := 0, n1-1
				if col == colLo {
					qLo = q1 % n1
				}
				if col == colHi {
					qHi = q2 % n1
				}
				childZ := base + row*tr.k + col
				childRowBase := rowBase + row*n1
				childColBase := colBase + col*n1
				if leafLevel {
					pos := childZ - tr.t.Len()
					v := tr.l[pos]
					if v == tr.null {
						continue
					}
					// a leaf slot's sub-block has side 1, so pLo == qLo is the
					// only coordinate the slot covers.
					visit(childRowBase+pLo, childColBase+qLo, v)
					continue
				}
				if !tr.t.Get(childZ) {
					continue
				}
				if recurse(childZ, n1, childRowBase, childColBase, pLo, pHi, qLo, qHi) {
					return true
				}
			}
		}
		return false
	}
	return recurse(-1, tr.nPrime, 0, 0, i1, i2, j1, j2)
}

// GetElementsInRange returns every non-null value in [i1,i2]x[j1,j2].
func (tr *Tree[E]) GetElementsInRange(i1, i2, j1, j2 int) []E {
	var out []E
	tr.forEachInRange(i1, i2, j1, j2, func(_, _ int, v E) { out = append(out, v) }, false)
	return out
}

// GetPositionsInRange returns every (row, col) with a non-null value in
// [i1,i2]x[j1,j2].
func (tr *Tree[E]) GetPositionsInRange(i1, i2, j1, j2 int) [][2]int {
	var out [][2]int
	tr.forEachInRange(i1, i2, j1, j2, func(i, j int, _ E) { out = append(out, [2]int{i, j}) }, false)
	return out
}

// GetValuedPositionsInRange returns every (row, col, value) triple with a
// non-null value in [i1,i2]x[j1,j2].
func (tr *Tree[E]) GetValuedPositionsInRange(i1, i2, j1, j2 int) []Triple[E] {
	var out []Triple[E]
	tr.forEachInRange(i1, i2, j1, j2, func(i, j int, v E) {
		out = append(out, Triple[E]{Row: i, Col: j, Value: v})
	}, false)
	return out
}

// GetRange is an alias for GetValuedPositionsInRange.
func (tr *Tree[E]) GetRange(i1, i2, j1, j2 int) []Triple[E] {
	return tr.GetValuedPositionsInRange(i1, i2, j1, j2)
}

// ContainsElement reports whether any cell in [i1,i2]x[j1,j2] is
// non-null. On a fresh instance the walk stops as soon as a visited
// subtree's full block is in range and its presence bit is set — the
// subtree is then known non-empty without descending further. A non-null
// leaf cell found on the way is recorded, but the walk does not stop
// there: it still visits the remaining overlapping blocks. The published
// paper's version of this shortcut used n/k-1 as the in-range bound; the
// correct bound is n-1, the side of the *current* block, not its children's.
func (tr *Tree[E]) ContainsElement(i1, i2, j1, j2 int) bool {
	found := false
	hit := tr.forEachInRange(i1, i2, j1, j2, func(int, int, E) { found = true }, !tr.tainted)
	return hit || found
}

// ContainsLink is an alias for ContainsElement using relation
// nomenclature.
func (tr *Tree[E]) ContainsLink(i1, i2, j1, j2 int) bool {
	return tr.ContainsElement(i1, i2, j1, j2)
}

// GetAllElements returns every non-null value in the tree.
func (tr *Tree[E]) GetAllElements() []E {
	return tr.GetElementsInRange(0, tr.nPrime-1, 0, tr.nPrime-1)
}

// GetAllPositions returns every (row, col) holding a non-null value.
func (tr *Tree[E]) GetAllPositions() [][2]int {
	return tr.GetPositionsInRange(0, tr.nPrime-1, 0, tr.nPrime-1)
}

// GetAllValuedPositions returns every (row, col, value) triple with a
// non-null value.
func (tr *Tree[E]) GetAllValuedPositions() []Triple[E] {
	return tr.GetValuedPositionsInRange(0, tr.nPrime-1, 0, tr.nPrime-1)
}

// CountElements returns the number of non-null cells.
func (tr *Tree[E]) CountElements() int {
	count := 0
	for _, v := range tr.l {
		if v != tr.null {
			count++
		}
	}
	return count
}

// CountLinks is an alias for CountElements using relation nomenclature.
func (tr *Tree[E]) CountLinks() int { return tr.CountElements() }

// SetNull overwrites the cell at (i, j) with null, if it holds a
// non-null value. This is a destructive, unstructured edit: no subtree
// is pruned and T is left untouched, which taints the instance — after
// this call, ContainsElement's fully-covered-subtree shortcut is
// disabled for the remaining lifetime of the tree.
func (tr *Tree[E]) SetNull(i, j int) {
	pos, ok := tr.descend(i, j)
	if !ok {
		return
	}
	if tr.l[pos] == tr.null {
		return
	}
	tr.l[pos] = tr.null
	if !tr.tainted {
		tr.tainted = true
		Logger.Warn().Int("i", i).Int("j", j).Msg("k2tree: SetNull tainted instance, containment shortcut disabled")
	}
}
