package k2tree

// empty reports whether the relation is entirely null: T and L are both
// of size zero. h == 1 trees carry a non-empty L with no T at all, so L
// alone (not T) is the discriminator.
func (tr *BoolTree) empty() bool { return tr.l.Len() == 0 }

// descend follows set bits of T from the root toward cell (i, j),
// returning the position within L of the cell the walk ends on and
// whether it reached an L cell. pos is meaningful only when ok is true.
func (tr *BoolTree) descend(i, j int) (pos int, ok bool) {
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

// IsNotNull reports whether (i, j) is set.
func (tr *BoolTree) IsNotNull(i, j int) bool {
	pos, ok := tr.descend(i, j)
	if !ok {
		return false
	}
	return tr.l.Get(pos)
}

// AreRelated is an alias for IsNotNull using relation nomenclature.
func (tr *BoolTree) AreRelated(i, j int) bool { return tr.IsNotNull(i, j) }

// GetElement returns whether (i, j) is set; the Boolean specialisation's
// element domain is its own presence bit.
func (tr *BoolTree) GetElement(i, j int) bool {
	return tr.IsNotNull(i, j)
}

// GetSuccessorPositions returns, in ascending order, every column j such
// that (i, j) is set.
func (tr *BoolTree) GetSuccessorPositions(i int) []int {
	var cols []int
	tr.forEachSuccessor(i, func(j int) { cols = append(cols, j) })
	return cols
}

// GetSuccessorElements returns a true for every set cell of row i, in
// column order — the Boolean collapse of the valued variant's per-cell
// values.
func (tr *BoolTree) GetSuccessorElements(i int) []bool {
	var vals []bool
	tr.forEachSuccessor(i, func(int) { vals = append(vals, true) })
	return vals
}

// GetSuccessorValuedPositions returns every (row=i, col, value=true)
// triple for row i's set cells, in column order.
func (tr *BoolTree) GetSuccessorValuedPositions(i int) []Triple[bool] {
	var out []Triple[bool]
	tr.forEachSuccessor(i, func(j int) { out = append(out, Triple[bool]{Row: i, Col: j, Value: true}) })
	return out
}

// GetSuccessors is an alias for GetSuccessorPositions.
func (tr *BoolTree) GetSuccessors(i int) []int { return tr.GetSuccessorPositions(i) }

func (tr *BoolTree) forEachSuccessor(i int, visit func(j int)) {
	if tr.empty() {
		return
	}
	if tr.h == 1 {
		for q := 0; q < tr.k; q++ {
			if tr.l.Get(i*tr.k + q) {
				visit(q)
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
				if tr.l.Get(pos) {
					visit(dqChild + pRes)
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
// that (i, j) is set.
func (tr *BoolTree) GetPredecessorPositions(j int) []int {
	var rows []int
	tr.forEachPredecessor(j, func(i int) { rows = append(rows, i) })
	return rows
}

// GetPredecessorElements returns a true for every set cell of column j,
// in row order.
func (tr *BoolTree) GetPredecessorElements(j int) []bool {
	var vals []bool
	tr.forEachPredecessor(j, func(int) { vals = append(vals, true) })
	return vals
}

// GetPredecessorValuedPositions returns every (row, col=j, value=true)
// triple for column j's set cells, in row order.
func (tr *BoolTree) GetPredecessorValuedPositions(j int) []Triple[bool] {
	var out []Triple[bool]
	tr.forEachPredecessor(j, func(i int) { out = append(out, Triple[bool]{Row: i, Col: j, Value: true}) })
	return out
}

// GetPredecessors is an alias for GetPredecessorPositions.
func (tr *BoolTree) GetPredecessors(j int) []int { return tr.GetPredecessorPositions(j) }

// forEachPredecessor is the recursive, row-symmetric twin of
// forEachSuccessor.
func (tr *BoolTree) forEachPredecessor(j int, visit func(i int)) {
	if tr.empty() {
		return
	}
	if tr.h == 1 {
		for p := 0; p < tr.k; p++ {
			if tr.l.Get(p*tr.k + j) {
				visit(p)
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
				if tr.l.Get(pos) {
					visit(dpChild + qRes)
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

// GetFirstSuccessor returns the smallest j such that (i, j) is set, or
// n' if none exists.
func (tr *BoolTree) GetFirstSuccessor(i int) int {
	if tr.empty() {
		return tr.nPrime
	}
	if tr.h == 1 {
		for q := 0; q < tr.k; q++ {
			if tr.l.Get(i*tr.k + q) {
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
			if tr.l.Get(pos) {
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
// calling visit once per set cell found. When useShortcut is true, a
// fully-covered present subtree is reported as a hit immediately, without
// descending further.
func (tr *BoolTree) forEachInRange(i1, i2, j1, j2 int, visit func(i, j int), useShortcut bool) bool {
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
					if !tr.l.Get(pos) {
						continue
					}
					visit(childRowBase+pLo, childColBase+qLo)
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

// GetElementsInRange returns a true for every set cell in [i1,i2]x[j1,j2].
func (tr *BoolTree) GetElementsInRange(i1, i2, j1, j2 int) []bool {
	var out []bool
	tr.forEachInRange(i1, i2, j1, j2, func(int, int) { out = append(out, true) }, false)
	return out
}

// GetPositionsInRange returns every (row, col) set in [i1,i2]x[j1,j2].
func (tr *BoolTree) GetPositionsInRange(i1, i2, j1, j2 int) [][2]int {
	var out [][2]int
	tr.forEachInRange(i1, i2, j1, j2, func(i, j int) { out = append(out, [2]int{i, j}) }, false)
	return out
}

// GetValuedPositionsInRange returns every (row, col, value=true) triple
// for the set cells in [i1,i2]x[j1,j2].
func (tr *BoolTree) GetValuedPositionsInRange(i1, i2, j1, j2 int) []Triple[bool] {
	var out []Triple[bool]
	tr.forEachInRange(i1, i2, j1, j2, func(i, j int) {
		out = append(out, Triple[bool]{Row: i, Col: j, Value: true})
	}, false)
	return out
}

// GetRange is an alias for GetValuedPositionsInRange.
func (tr *BoolTree) GetRange(i1, i2, j1, j2 int) []Triple[bool] {
	return tr.GetValuedPositionsInRange(i1, i2, j1, j2)
}

// ContainsElement reports whether any cell in [i1,i2]x[j1,j2] is set.
// On a fresh instance the walk stops as soon as a visited subtree's full
// block is in range and its presence bit is set. A set leaf cell found on
// the way is recorded, but the walk does not stop there: it still visits
// the remaining overlapping blocks. The published paper's version of
// this shortcut used n/k-1 as the in-range bound; the correct bound is
// n-1, the side of the current block, not its children's.
func (tr *BoolTree) ContainsElement(i1, i2, j1, j2 int) bool {
	found := false
	hit := tr.forEachInRange(i1, i2, j1, j2, func(int, int) { found = true }, !tr.tainted)
	return hit || found
}

// ContainsLink is an alias for ContainsElement using relation
// nomenclature.
func (tr *BoolTree) ContainsLink(i1, i2, j1, j2 int) bool {
	return tr.ContainsElement(i1, i2, j1, j2)
}

// GetAllElements returns a true for every set cell in the tree.
func (tr *BoolTree) GetAllElements() []bool {
	return tr.GetElementsInRange(0, tr.nPrime-1, 0, tr.nPrime-1)
}

// GetAllPositions returns every (row, col) holding a set cell.
func (tr *BoolTree) GetAllPositions() [][2]int {
	return tr.GetPositionsInRange(0, tr.nPrime-1, 0, tr.nPrime-1)
}

// GetAllValuedPositions returns every (row, col, value=true) triple for
// the tree's set cells.
func (tr *BoolTree) GetAllValuedPositions() []Triple[bool] {
	return tr.GetValuedPositionsInRange(0, tr.nPrime-1, 0, tr.nPrime-1)
}

// CountElements returns the number of set cells, computed as rank1(L)
// rather than a linear scan.
func (tr *BoolTree) CountElements() int {
	return tr.lr.Rank1(tr.l.Len())
}

// CountLinks is an alias for CountElements using relation nomenclature.
func (tr *BoolTree) CountLinks() int { return tr.CountElements() }

// SetNull clears the cell at (i, j), if set. This is a destructive,
// unstructured edit: no subtree is pruned and T is left untouched, which
// taints the instance — after this call, ContainsElement's
// fully-covered-subtree shortcut is disabled for the remaining lifetime
// of the tree.
//
// Clearing a bit changes rank1 over L, so SetNull rebuilds the rank index
// over L after the write; CountElements then reflects the cleared bit.
func (tr *BoolTree) SetNull(i, j int) {
	pos, ok := tr.descend(i, j)
	if !ok {
		return
	}
	if !tr.l.Get(pos) {
		return
	}
	tr.l.Set(pos, false)
	tr.lr.Rebuild(tr.l)
	if !tr.tainted {
		tr.tainted = true
		Logger.Warn().Int("i", i).Int("j", j).Msg("k2tree: SetNull tainted instance, containment shortcut disabled")
	}
}
