package k2tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postfix/k2trees/k2tree"
)

func singleCellMatrix() [][]int {
	return [][]int{
		{0, 0, 0},
		{0, 0, 7},
		{0, 0, 0},
	}
}

func TestNewTreeFromMatrixSingleCell(t *testing.T) {
	tr, err := k2tree.NewTreeFromMatrix(2, singleCellMatrix(), 0)
	require.NoError(t, err)

	assert.Equal(t, 2, tr.GetH())
	assert.Equal(t, 2, tr.GetK())

	assert.Equal(t, 7, tr.GetElement(1, 2))
	assert.Equal(t, []int{2}, tr.GetSuccessorPositions(1))
	assert.Equal(t, []int{1}, tr.GetPredecessorPositions(2))
	assert.Equal(t, 2, tr.GetFirstSuccessor(1))
	assert.Equal(t, 4, tr.GetFirstSuccessor(0))
	assert.Equal(t, 1, tr.CountElements())
}

func TestNewTreeFromMatrixEmpty(t *testing.T) {
	mat := [][]int{{0, 0}, {0, 0}}
	tr, err := k2tree.NewTreeFromMatrix(2, mat, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, tr.CountElements())
	assert.False(t, tr.IsNotNull(0, 0))
	assert.Empty(t, tr.GetAllPositions())
}

func TestNewTreeFromMatrixEntirelyNull5x5(t *testing.T) {
	mat := make([][]int, 5)
	for i := range mat {
		mat[i] = make([]int, 5)
	}
	tr, err := k2tree.NewTreeFromMatrix(3, mat, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, tr.GetH())
	assert.Empty(t, tr.GetAllPositions())
	assert.Equal(t, tr.GetNull(), tr.GetElement(4, 4))
	assert.Equal(t, 9, tr.GetFirstSuccessor(0))
	assert.False(t, tr.ContainsElement(0, 8, 0, 8))
}

func TestGetRangeAndContainsElement(t *testing.T) {
	mat := [][]int{
		{1, 0, 0, 0},
		{0, 0, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 3},
	}
	tr, err := k2tree.NewTreeFromMatrix(2, mat, 0)
	require.NoError(t, err)

	assert.True(t, tr.ContainsElement(0, 1, 0, 1))
	assert.False(t, tr.ContainsElement(2, 2, 0, 3))
	assert.ElementsMatch(t, []int{1, 2, 3}, tr.GetElementsInRange(0, 3, 0, 3))

	got := tr.GetRange(1, 3, 0, 3)
	require.Len(t, got, 2)
}

func TestSetNullTaintsInstance(t *testing.T) {
	mat := [][]int{{1, 0}, {0, 2}}
	tr, err := k2tree.NewTreeFromMatrix(2, mat, 0)
	require.NoError(t, err)

	require.True(t, tr.ContainsElement(0, 1, 0, 1))
	tr.SetNull(0, 0)
	assert.False(t, tr.IsNotNull(0, 0))
	assert.True(t, tr.ContainsElement(0, 1, 0, 1)) // cell (1,1) still set
	tr.SetNull(1, 1)
	assert.False(t, tr.ContainsElement(0, 1, 0, 1))
}

func TestConstructionModesAgree(t *testing.T) {
	const k = 3
	mat := [][]int{
		{0, 0, 0, 5, 0, 0},
		{0, 0, 0, 0, 0, 9},
		{1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 2, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}

	fromMatrix, err := k2tree.NewTreeFromMatrix(k, mat, 0)
	require.NoError(t, err)

	var rowLists [][]k2tree.ColValue[int]
	for _, row := range mat {
		var cvs []k2tree.ColValue[int]
		for j, v := range row {
			if v != 0 {
				cvs = append(cvs, k2tree.ColValue[int]{Col: j, Value: v})
			}
		}
		rowLists = append(rowLists, cvs)
	}
	fromRec, err := k2tree.NewTreeFromRowListsRecursive(k, len(mat[0]), rowLists, 0)
	require.NoError(t, err)
	fromTree, err := k2tree.NewTreeFromRowListsViaTree(k, len(mat[0]), rowLists, 0)
	require.NoError(t, err)
	fromDyn, err := k2tree.NewTreeFromRowListsDynamic(k, len(mat[0]), rowLists, 0)
	require.NoError(t, err)

	var triples []k2tree.Triple[int]
	for i, row := range mat {
		for j, v := range row {
			if v != 0 {
				triples = append(triples, k2tree.Triple[int]{Row: i, Col: j, Value: v})
			}
		}
	}
	fromPairs, err := k2tree.NewTreeFromPairs(k, len(mat), len(mat[0]), triples, 0)
	require.NoError(t, err)

	want := fromMatrix.GetAllValuedPositions()
	for _, other := range []*k2tree.Tree[int]{fromRec, fromTree, fromDyn, fromPairs} {
		assert.ElementsMatch(t, want, other.GetAllValuedPositions())
		assert.Equal(t, fromMatrix.CountElements(), other.CountElements())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	mat := [][]int{{1, 0}, {0, 2}}
	tr, err := k2tree.NewTreeFromMatrix(2, mat, 0)
	require.NoError(t, err)

	clone := tr.Clone()
	clone.SetNull(0, 0)
	assert.False(t, clone.IsNotNull(0, 0))
	assert.True(t, tr.IsNotNull(0, 0))
}
