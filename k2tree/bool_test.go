package k2tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postfix/k2trees/k2tree"
)

func TestNewBoolTreeFromMatrixFull(t *testing.T) {
	mat := [][]bool{{true, true}, {true, true}}
	tr, err := k2tree.NewBoolTreeFromMatrix(2, mat)
	require.NoError(t, err)

	assert.Equal(t, 1, tr.GetH())
	assert.Equal(t, 4, tr.CountElements())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.True(t, tr.AreRelated(i, j))
		}
	}
	assert.Equal(t, 0, tr.GetFirstSuccessor(0))
}

func TestNewBoolTreeFromMatrixDiagonal(t *testing.T) {
	mat := [][]bool{
		{true, false, false, false},
		{false, true, false, false},
		{false, false, true, false},
		{false, false, false, true},
	}
	tr, err := k2tree.NewBoolTreeFromMatrix(2, mat)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, []int{i}, tr.GetSuccessors(i))
		assert.Equal(t, []int{i}, tr.GetPredecessors(i))
	}
	assert.True(t, tr.ContainsLink(0, 3, 0, 3))
	assert.False(t, tr.ContainsLink(0, 1, 2, 3))
}

func TestBoolTreeConstructionModesAgree(t *testing.T) {
	const k = 2
	mat := [][]bool{
		{true, false, false, false},
		{false, false, false, true},
		{false, true, false, false},
		{false, false, false, false},
	}

	fromMatrix, err := k2tree.NewBoolTreeFromMatrix(k, mat)
	require.NoError(t, err)

	var rowLists [][]int
	for _, row := range mat {
		var cols []int
		for j, v := range row {
			if v {
				cols = append(cols, j)
			}
		}
		rowLists = append(rowLists, cols)
	}
	fromRec, err := k2tree.NewBoolTreeFromRowListsRecursive(k, len(mat[0]), rowLists)
	require.NoError(t, err)
	fromTree, err := k2tree.NewBoolTreeFromRowListsViaTree(k, len(mat[0]), rowLists)
	require.NoError(t, err)
	fromDyn, err := k2tree.NewBoolTreeFromRowListsDynamic(k, len(mat[0]), rowLists)
	require.NoError(t, err)

	var pairs [][2]int
	for i, row := range mat {
		for j, v := range row {
			if v {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	fromPairs, err := k2tree.NewBoolTreeFromPairs(k, len(mat), len(mat[0]), pairs)
	require.NoError(t, err)

	want := fromMatrix.GetAllPositions()
	for _, other := range []*k2tree.BoolTree{fromRec, fromTree, fromDyn, fromPairs} {
		assert.ElementsMatch(t, want, other.GetAllPositions())
		assert.Equal(t, fromMatrix.CountElements(), other.CountElements())
	}
}

func TestBoolTreeSetNullTaints(t *testing.T) {
	mat := [][]bool{{true, false}, {false, true}}
	tr, err := k2tree.NewBoolTreeFromMatrix(2, mat)
	require.NoError(t, err)

	require.True(t, tr.ContainsElement(0, 1, 0, 1))
	tr.SetNull(0, 0)
	assert.False(t, tr.IsNotNull(0, 0))
	tr.SetNull(1, 1)
	assert.False(t, tr.ContainsElement(0, 1, 0, 1))
}

func TestBoolTreeEntirelyNull(t *testing.T) {
	mat := make([][]bool, 5)
	for i := range mat {
		mat[i] = make([]bool, 5)
	}
	tr, err := k2tree.NewBoolTreeFromMatrix(3, mat)
	require.NoError(t, err)

	assert.Equal(t, 0, tr.CountElements())
	assert.Empty(t, tr.GetAllPositions())
	assert.False(t, tr.ContainsElement(0, 8, 0, 8))
	assert.Equal(t, 9, tr.GetFirstSuccessor(0))
}

func TestBoolTreeSuccessorDuality(t *testing.T) {
	mat := [][]bool{
		{false, true, false},
		{true, false, true},
		{false, false, false},
	}
	tr, err := k2tree.NewBoolTreeFromMatrix(2, mat)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for _, j := range tr.GetSuccessorPositions(i) {
			assert.Contains(t, tr.GetPredecessorPositions(j), i)
		}
	}
}
