package k2tree

import (
	"github.com/postfix/k2trees/bitvector"
	"github.com/postfix/k2trees/internal/ptree"
)

func finalizeBoolTree(k, h, nPrime, rows, cols int, tbits, lbits []bool) *BoolTree {
	tr := &BoolTree{
		k: k, h: h, nPrime: nPrime,
		rows: rows, cols: cols,
		t: bitvector.FromBools(tbits),
		l: bitvector.FromBools(lbits),
	}
	tr.r = bitvector.BuildRank(tr.t)
	tr.lr = bitvector.BuildRank(tr.l)
	return tr
}

// NewBoolTreeFromMatrix builds a BoolTree from a dense, rectangular 0/1
// matrix (Mode M), the Boolean twin of NewTreeFromMatrix.
func NewBoolTreeFromMatrix(k int, mat [][]bool) (*BoolTree, error) {
	if k < 2 {
		return nil, invalidInput("NewBoolTreeFromMatrix", "k must be >= 2, got %d", k)
	}
	rows := len(mat)
	cols := 0
	if rows > 0 {
		cols = len(mat[0])
		for i, row := range mat {
			if len(row) != cols {
				return nil, invalidInput("NewBoolTreeFromMatrix", "row %d has length %d, want %d", i, len(row), cols)
			}
		}
	}

	h := computeHeight(k, maxInt(rows, cols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	levels := make([][]bool, h)
	var l []bool

	at := func(i, j int) bool {
		if i < rows && j < cols {
			return mat[i][j]
		}
		return false
	}

	var recurse func(level, n, p, q int) bool
	recurse = func(level, n, p, q int) bool {
		if level == h {
			block := make([]bool, kSquared)
			any := false
			idx := 0
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					v := at(p+i, q+j)
					block[idx] = v
					idx++
					any = any || v
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
				any = any || child
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
	return finalizeBoolTree(k, h, nPrime, rows, cols, tbits, l), nil
}

func validateBoolRowLists(op string, rows [][]int) error {
	for i, row := range rows {
		last := -1
		for _, col := range row {
			if col <= last {
				return invalidInput(op, "row %d not sorted ascending by column at col %d", i, col)
			}
			last = col
		}
	}
	return nil
}

// NewBoolTreeFromRowListsRecursive builds a BoolTree from per-row ascending
// column lists (Mode L-rec), the Boolean twin of NewTreeFromRowListsRecursive.
func NewBoolTreeFromRowListsRecursive(k, numCols int, rows [][]int) (*BoolTree, error) {
	if k < 2 {
		return nil, invalidInput("NewBoolTreeFromRowListsRecursive", "k must be >= 2, got %d", k)
	}
	if err := validateBoolRowLists("NewBoolTreeFromRowListsRecursive", rows); err != nil {
		return nil, err
	}
	numRows := len(rows)
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	cursors := make([]int, numRows)

	at := func(i, j int) bool {
		if i >= numRows {
			return false
		}
		row := rows[i]
		c := cursors[i]
		if c < len(row) && row[c] == j {
			cursors[i]++
			return true
		}
		return false
	}

	levels := make([][]bool, h)
	var l []bool

	var recurse func(level, n, p, q int) bool
	recurse = func(level, n, p, q int) bool {
		if level == h {
			block := make([]bool, kSquared)
			any := false
			idx := 0
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					v := at(p+i, q+j)
					block[idx] = v
					idx++
					any = any || v
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
				any = any || child
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
	return finalizeBoolTree(k, h, nPrime, numRows, numCols, tbits, l), nil
}

// NewBoolTreeFromRowListsViaTree builds a BoolTree from per-row ascending
// column lists (Mode L-tree): every listed cell is inserted into a
// temporary pointer tree holding the value true, then the tree is
// linearised breadth-first and discarded.
func NewBoolTreeFromRowListsViaTree(k, numCols int, rows [][]int) (*BoolTree, error) {
	if k < 2 {
		return nil, invalidInput("NewBoolTreeFromRowListsViaTree", "k must be >= 2, got %d", k)
	}
	if err := validateBoolRowLists("NewBoolTreeFromRowListsViaTree", rows); err != nil {
		return nil, err
	}
	numRows := len(rows)
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)

	root := ptree.NewInterior()
	any := false
	for i, row := range rows {
		for _, col := range row {
			ptree.Insert(root, k, nPrime, i, col, true)
			any = true
		}
	}
	if !any {
		return finalizeBoolTree(k, h, nPrime, numRows, numCols, nil, nil), nil
	}

	tbits, lvals := ptree.Linearise(root, k, nPrime, false)
	lbits := make([]bool, len(lvals))
	for i, v := range lvals {
		lbits[i] = v.(bool)
	}
	return finalizeBoolTree(k, h, nPrime, numRows, numCols, tbits, lbits), nil
}

// NewBoolTreeFromRowListsDynamic builds a BoolTree from per-row ascending
// column lists (Mode L-dyn), the Boolean twin of
// NewTreeFromRowListsDynamic: T grows online via a dynamic bit vector and
// dynamic rank oracle, and L grows by the same k² zero-run insertion rule
// since a Boolean leaf's "null fill" is simply false.
func NewBoolTreeFromRowListsDynamic(k, numCols int, rows [][]int) (*BoolTree, error) {
	if k < 2 {
		return nil, invalidInput("NewBoolTreeFromRowListsDynamic", "k must be >= 2, got %d", k)
	}
	if err := validateBoolRowLists("NewBoolTreeFromRowListsDynamic", rows); err != nil {
		return nil, err
	}
	numRows := len(rows)
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	t := bitvector.NewDynamicBits()
	l := bitvector.NewDynamicBits()
	var rank *bitvector.DynamicRank

	insertCell := func(row, col int) {
		n := nPrime
		p, q := row, col
		base := 0
		for level := 1; level < h; level++ {
			n1 := n / k
			z := base + (p/n1)*k + q/n1
			if !t.Get(z) {
				t.Set(z, true)
				rank.IncreaseFrom(z + 1)
				pos := rank.Rank1(z+1) * kSquared
				if level == h-1 {
					l.InsertZeros(pos-t.Len(), kSquared)
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
		l.Set(base+p*k+q, true)
	}

	if h == 1 {
		any := false
		lbits := make([]bool, kSquared)
		for i, row := range rows {
			for _, col := range row {
				lbits[i*k+col] = true
				any = true
			}
		}
		if !any {
			lbits = nil
		}
		return finalizeBoolTree(k, h, nPrime, numRows, numCols, nil, lbits), nil
	}

	t.InsertZeros(0, kSquared)
	rank = bitvector.NewDynamicRank(make([]bool, kSquared))

	any := false
	for i, row := range rows {
		for _, col := range row {
			insertCell(i, col)
			any = true
		}
	}

	tbits := make([]bool, t.Len())
	for i := range tbits {
		tbits[i] = t.Get(i)
	}
	lbits := make([]bool, l.Len())
	for i := range lbits {
		lbits[i] = l.Get(i)
	}
	if !any {
		tbits, lbits = nil, nil
	}
	return finalizeBoolTree(k, h, nPrime, numRows, numCols, tbits, lbits), nil
}

// NewBoolTreeFromPairs builds a BoolTree from an unordered list of (row,
// col) pairs (Mode P), the Boolean twin of NewTreeFromPairs.
func NewBoolTreeFromPairs(k, numRows, numCols int, pairs [][2]int) (*BoolTree, error) {
	if k < 2 {
		return nil, invalidInput("NewBoolTreeFromPairs", "k must be >= 2, got %d", k)
	}
	for _, p := range pairs {
		if p[0] < 0 || p[0] >= numRows || p[1] < 0 || p[1] >= numCols {
			return nil, invalidInput("NewBoolTreeFromPairs", "pair (%d, %d) outside %dx%d matrix", p[0], p[1], numRows, numCols)
		}
	}
	h := computeHeight(k, maxInt(numRows, numCols))
	nPrime := nPrimeOf(k, h)
	kSquared := k * k

	if len(pairs) == 0 {
		return finalizeBoolTree(k, h, nPrime, numRows, numCols, nil, nil), nil
	}
	work := append([][2]int(nil), pairs...)

	levels := make([][]bool, h)
	var l []bool

	queue := []subproblem{{0, 0, nPrime, 0, len(work)}}
	for len(queue) > 0 {
		sp := queue[0]
		queue = queue[1:]

		if sp.side == k {
			block := make([]bool, kSquared)
			for _, p := range work[sp.lo:sp.hi] {
				local := (p[0]-sp.rowBase)*k + (p[1] - sp.colBase)
				block[local] = true
			}
			l = append(l, block...)
			continue
		}

		step := sp.side / k
		counts := make([]int, kSquared)
		bucket := make([]int, sp.hi-sp.lo)
		for i, p := range work[sp.lo:sp.hi] {
			b := ((p[0]-sp.rowBase)/step)*k + (p[1]-sp.colBase)/step
			bucket[i] = b
			counts[b]++
		}
		offsets := make([]int, kSquared+1)
		for b := 0; b < kSquared; b++ {
			offsets[b+1] = offsets[b] + counts[b]
		}
		sorted := make([][2]int, sp.hi-sp.lo)
		cursor := append([]int(nil), offsets[:kSquared]...)
		for i, p := range work[sp.lo:sp.hi] {
			b := bucket[i]
			sorted[cursor[b]] = p
			cursor[b]++
		}
		copy(work[sp.lo:sp.hi], sorted)

		halvings := 0
		for n := nPrime; n > sp.side; n /= k {
			halvings++
		}
		depth := halvings + 1
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
	return finalizeBoolTree(k, h, nPrime, numRows, numCols, tbits, l), nil
}
