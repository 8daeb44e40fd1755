// Package k2tree implements the k²-tree: a compact static representation
// of a sparse square relation over a value domain E with a distinguished
// null, navigable by point, row, column, range and first-successor
// queries without decompression. Tree[E] is the generic valued variant;
// BoolTree is the Boolean specialisation whose leaf layer is a packed bit
// sequence instead of a slice of E.
package k2tree

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the structured sink Print and tainted-state warnings write
// through. Callers may replace it (e.g. to silence diagnostics in tests)
// without affecting query correctness.
var Logger zerolog.Logger = log.Logger

// InvalidInputError reports malformed construction input: a row list not
// sorted ascending by column, a ragged matrix, an out-of-range pair.
// Query-surface methods never return this — per-spec, coordinates out of
// [0, n') on an otherwise well-formed tree are undefined behaviour, not a
// reported error.
type InvalidInputError struct {
	Op  string
	Err error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("k2tree: invalid input for %s: %v", e.Op, e.Err)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

func invalidInput(op string, format string, args ...any) error {
	return &InvalidInputError{Op: op, Err: fmt.Errorf(format, args...)}
}

// computeHeight returns h = max(1, ceil(log_k(maxDim))), the smallest
// height such that k^h >= maxDim.
func computeHeight(k, maxDim int) int {
	if maxDim < 1 {
		maxDim = 1
	}
	h := 1
	n := k
	for n < maxDim {
		n *= k
		h++
	}
	return h
}

// nPrimeOf returns k^h.
func nPrimeOf(k, h int) int {
	n := 1
	for i := 0; i < h; i++ {
		n *= k
	}
	return n
}

// ColValue is one (column, value) entry of a row list; row lists passed
// to the list-based constructors must be sorted ascending by Col.
type ColValue[E any] struct {
	Col   int
	Value E
}

// Triple is one (row, col, value) entry of the unordered list accepted by
// NewTreeFromPairs, and the element of every valued-position query result.
// NewBoolTreeFromPairs takes plain (row, col) pairs instead.
type Triple[E any] struct {
	Row, Col int
	Value    E
}

// subproblem is one item of the FIFO queue driving Mode P construction:
// a row/col sub-block of side s starting at (rowBase, colBase), together
// with the slice of the working triple/pair array it still owns.
type subproblem struct {
	rowBase, colBase, side int
	lo, hi                 int // [lo, hi) into the working slice
}
