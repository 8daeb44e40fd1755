package k2tree

import (
	"github.com/postfix/k2trees/bitvector"
	"github.com/postfix/k2trees/internal/ptree"
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func finalizeTree[E comparable](k, h, nPrime, rows, cols int, null E, tbits []bool, l []E) *Tree[E] {
	tr := &Tree[E]{
		k: k, h: h, nPrime: nPrime,
		rows: rows, cols: cols, null: null,
		t: bitvector.FromBools(tbits),
		l: l,
	}
	tr.r = bitvector.BuildRank(tr.t)
	return tr
}

// NewTreeFromMatrix builds a Tree from a dense, rectangular matrix (Mode M):
// a recursive post-order build over the implicit k-ary quadtree, padding
// out-of-bounds cells with null.
func NewTreeFromMatrix[E comparable](k int, mat [][]E, null E) (*Tree[E], error) {
	if k < 2 {
		return nil, invalidInput("NewTreeFromMatrix", "k must be >= 2, got %d", k)
	}
	rows := len(mat)
	cols := 0
	if rows > 0 {
		cols = len(mat[0])
		for i, row := range mat {
			if len(row) != cols {
				return nil, invalidInput("NewTreeFromMatrix", "row %d has length %d, want %d", i, len(row), cols)
			}
		}
	}

	h := computeHeight(k, maxInt(rows, cols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	levels := make([][]bool, h) // levels[1..h-1] hold T's per-level blocks
	var l []E

	at := func(i, j int) E {
		if i < rows && j < cols {
			return mat[i][j]
		}
		return null
	}

	var recurse func(level, n, p, q int) bool
	recurse = func(level, n, p, q int) bool {
		if level == h {
			block := make([]E, kSquared)
			any := false
			idx := 0
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					v := at(p+i, q+j)
					block[idx] = v
					idx++
					if v != null {
						any = true
					}
				}
			}
			if any {
				l = append(l, block...)
			}
			return any
		}
		n1 := n / k
		block := make([]bool, kSquared)
		any := false
		idx := 0
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				child := recurse(level+1, n1, p+i*n1, q+j*n1)
				block[idx] = child
				idx++
				if child {
					any = true
				}
			}
		}
		if any {
			levels[level] = append(levels[level], block...)
		}
		return any
	}
	recurse(1, nPrime, 0, 0)

	var tbits []bool
	for lvl := 1; lvl < h; lvl++ {
		tbits = append(tbits, levels[lvl]...)
	}
	return finalizeTree(k, h, nPrime, rows, cols, null, tbits, l), nil
}

func validateRowLists[E any](op string, rows [][]ColValue[E]) error {
	for i, row := range rows {
		last := -1
		for _, cv := range row {
			if cv.Col <= last {
				return invalidInput(op, "row %d not sorted ascending by column at col %d", i, cv.Col)
			}
			last = cv.Col
		}
	}
	return nil
}

// NewTreeFromRowListsRecursive builds a Tree from per-row (col, value)
// lists (Mode L-rec): a parallel array of per-row cursors advances
// through the lists during a recursion that otherwise mirrors Mode M.
func NewTreeFromRowListsRecursive[E comparable](k, numCols int, rows [][]ColValue[E], null E) (*Tree[E], error) {
	if k < 2 {
		return nil, invalidInput("NewTreeFromRowListsRecursive", "k must be >= 2, got %d", k)
	}
	if err := validateRowLists("NewTreeFromRowListsRecursive", rows); err != nil {
		return nil, err
	}
	numRows := len(rows)
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	cursors := make([]int, numRows)

	at := func(i, j int) E {
		if i >= numRows {
			return null
		}
		row := rows[i]
		c := cursors[i]
		if c < len(row) && row[c].Col == j {
			cursors[i]++
			return row[c].Value
		}
		return null
	}

	levels := make([][]bool, h)
	var l []E

	var recurse func(level, n, p, q int) bool
	recurse = func(level, n, p, q int) bool {
		if level == h {
			block := make([]E, kSquared)
			any := false
			idx := 0
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					v := at(p+i, q+j)
					block[idx] = v
					idx++
					if v != null {
						any = true
					}
				}
			}
			if any {
				l = append(l, block...)
			}
			return any
		}
		n1 := n / k
		block := make([]bool, kSquared)
		any := false
		idx := 0
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				child := recurse(level+1, n1, p+i*n1, q+j*n1)
				block[idx] = child
				idx++
				if child {
					any = true
				}
			}
		}
		if any {
			levels[level] = append(levels[level], block...)
		}
		return any
	}
	recurse(1, nPrime, 0, 0)

	var tbits []bool
	for lvl := 1; lvl < h; lvl++ {
		tbits = append(tbits, levels[lvl]...)
	}
	return finalizeTree(k, h, nPrime, numRows, numCols, null, tbits, l), nil
}

// NewTreeFromRowListsViaTree builds a Tree from per-row (col, value)
// lists (Mode L-tree): each cell is inserted one at a time into a
// temporary pointer tree, which is then linearised breadth-first into
// (T, L) and discarded.
func NewTreeFromRowListsViaTree[E comparable](k, numCols int, rows [][]ColValue[E], null E) (*Tree[E], error) {
	if k < 2 {
		return nil, invalidInput("NewTreeFromRowListsViaTree", "k must be >= 2, got %d", k)
	}
	if err := validateRowLists("NewTreeFromRowListsViaTree", rows); err != nil {
		return nil, err
	}
	numRows := len(rows)
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)

	root := ptree.NewInterior()
	any := false
	for i, row := range rows {
		for _, cv := range row {
			if cv.Value == null {
				continue
			}
			ptree.Insert(root, k, nPrime, i, cv.Col, cv.Value)
			any = true
		}
	}
	if !any {
		return finalizeTree[E](k, h, nPrime, numRows, numCols, null, nil, nil), nil
	}

	tbits, lvals := ptree.Linearise(root, k, nPrime, null)
	l := make([]E, len(lvals))
	for i, v := range lvals {
		l[i] = v.(E)
	}
	return finalizeTree(k, h, nPrime, numRows, numCols, null, tbits, l), nil
}

// NewTreeFromRowListsDynamic builds a Tree from per-row (col, value)
// lists (Mode L-dyn): T grows online as a dynamic bit vector with a
// dynamic rank oracle; each cell's descent path sets bits and, on first
// traversal of an edge, inserts k² zero bits (or k² null cells in L) at
// the newly discovered child's position.
func NewTreeFromRowListsDynamic[E comparable](k, numCols int, rows [][]ColValue[E], null E) (*Tree[E], error) {
	if k < 2 {
		return nil, invalidInput("NewTreeFromRowListsDynamic", "k must be >= 2, got %d", k)
	}
	if err := validateRowLists("NewTreeFromRowListsDynamic", rows); err != nil {
		return nil, err
	}
	numRows := len(rows)
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	t := bitvector.NewDynamicBits()
	l := make([]E, 0)
	var rank *bitvector.DynamicRank

	// insertCell walks the cell's descent path, growing T (and, at the
	// last level, L) on first traversal of any edge. The position at
	// which a newly-discovered child's own k²-block belongs is always
	// rank1(z+1)*k², measured in the unified T∘L address space; for an
	// intermediate level that position lands inside T directly, but for
	// the last level it must be offset back by the current length of T
	// to become a position inside L.
	insertCell := func(row, col int, val E) {
		n := nPrime
		p, q := row, col
		base := 0 // start of the current node's own k² block within T
		for level := 1; level < h; level++ {
			n1 := n / k
			z := base + (p/n1)*k + q/n1
			if !t.Get(z) {
				t.Set(z, true)
				rank.IncreaseFrom(z + 1)
				pos := rank.Rank1(z+1) * kSquared
				if level == h-1 {
					inserted := make([]E, kSquared)
					for i := range inserted {
						inserted[i] = null
					}
					lPos := pos - t.Len()
					l = append(l[:lPos], append(inserted, l[lPos:]...)...)
				} else {
					t.InsertZeros(pos, kSquared)
					rank.InsertZeros(pos, kSquared)
				}
			}
			pos := rank.Rank1(z+1) * kSquared
			if level == h-1 {
				base = pos - t.Len()
			} else {
				base = pos
			}
			n = n1
			p, q = p%n1, q%n1
		}
		if val != null {
			l[base+p*k+q] = val
		}
	}

	if h == 1 {
		l = make([]E, kSquared)
		for i := range l {
			l[i] = null
		}
		any := false
		for i, row := range rows {
			for _, cv := range row {
				if cv.Value != null {
					l[i*k+cv.Col] = cv.Value
					any = true
				}
			}
		}
		if !any {
			l = nil
		}
		return finalizeTree[E](k, h, nPrime, numRows, numCols, null, nil, l), nil
	}

	// The root's own k² block always exists once h > 1; later levels are
	// grown lazily on first descent into each child.
	t.InsertZeros(0, kSquared)
	rank = bitvector.NewDynamicRank(make([]bool, kSquared))

	for i, row := range rows {
		for _, cv := range row {
			if cv.Value == null {
				continue
			}
			insertCell(i, cv.Col, cv.Value)
		}
	}

	tbits := make([]bool, t.Len())
	for i := range tbits {
		tbits[i] = t.Get(i)
	}
	if len(l) == 0 {
		tbits = nil
	}
	return finalizeTree(k, h, nPrime, numRows, numCols, null, tbits, l), nil
}

// NewTreeFromPairs builds a Tree from an unordered list of (row, col,
// value) triples (Mode P): an in-place, FIFO subproblem queue splits the
// working slice by counting sort until each subproblem covers a k x k
// block, which becomes a leaf emitted straight into L.
func NewTreeFromPairs[E comparable](k, numRows, numCols int, pairs []Triple[E], null E) (*Tree[E], error) {
	if k < 2 {
		return nil, invalidInput("NewTreeFromPairs", "k must be >= 2, got %d", k)
	}
	work := make([]Triple[E], 0, len(pairs))
	for _, p := range pairs {
		if p.Row < 0 || p.Row >= numRows || p.Col < 0 || p.Col >= numCols {
			return nil, invalidInput("NewTreeFromPairs", "pair (%d, %d) outside %dx%d matrix", p.Row, p.Col, numRows, numCols)
		}
		if p.Value != null {
			work = append(work, p)
		}
	}
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	if len(work) == 0 {
		return finalizeTree[E](k, h, nPrime, numRows, numCols, null, nil, nil), nil
	}

	levels := make([][]bool, h)
	var l []E

	queue := []subproblem{{0, 0, nPrime, 0, len(work)}}
	for len(queue) > 0 {
		sp := queue[0]
		queue = queue[1:]

		if sp.side == k {
			block := make([]E, kSquared)
			for i := range block {
				block[i] = null
			}
			for _, t := range work[sp.lo:sp.hi] {
				local := (t.Row-sp.rowBase)*k + (t.Col - sp.colBase)
				block[local] = t.Value
			}
			l = append(l, block...)
			continue
		}

		step := sp.side / k
		counts := make([]int, kSquared)
		bucket := make([]int, sp.hi-sp.lo)
		for i, t := range work[sp.lo:sp.hi] {
			b := ((t.Row-sp.rowBase)/step)*k + (t.Col-sp.colBase)/step
			bucket[i] = b
			counts[b]++
		}
		offsets := make([]int, kSquared+1)
		for b := 0; b < kSquared; b++ {
			offsets[b+1] = offsets[b] + counts[b]
		}
		sorted := make([]Triple[E], sp.hi-sp.lo)
		cursor := append([]int(nil), offsets[:kSquared]...)
		for i, t := range work[sp.lo:sp.hi] {
			b := bucket[i]
			sorted[cursor[b]] = t
			cursor[b]++
		}
		copy(work[sp.lo:sp.hi], sorted)

		halvings := 0
		for n := nPrime; n > sp.side; n /= k {
			halvings++
		}
		depth := halvings + 1 // root subproblem (side == nPrime) is level 1, matching Mode M
		block := make([]bool, kSquared)
		any := false
		for b := 0; b < kSquared; b++ {
			lo, hi := sp.lo+offsets[b], sp.lo+offsets[b+1]
			if hi > lo {
				block[b] = true
				any = true
				rowBase := sp.rowBase + (b/k)*step
				colBase := sp.colBase + (b%k)*step
				queue = append(queue, subproblem{rowBase, colBase, step, lo, hi})
			}
		}
		if any {
			levels[depth] = append(levels[depth], block...)
		}
	}

	var tbits []bool
	for lvl := 1; lvl < h; lvl++ {
		tbits = append(tbits, levels[lvl]...)
	}
	return finalizeTree(k, h, nPrime, numRows, numCols, null, tbits, l), nil
}
