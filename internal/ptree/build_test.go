package ptree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postfix/k2trees/internal/ptree"
)

func TestInsertAndLineariseSingleCell(t *testing.T) {
	root := ptree.NewInterior()
	ptree.Insert(root, 2, 4, 1, 2, 7)

	tbits, lvals := ptree.Linearise(root, 2, 4, nil)

	assert.Equal(t, []bool{false, true, false, false}, tbits)
	require.Len(t, lvals, 4)
	assert.Equal(t, []interface{}{nil, nil, 7, nil}, lvals)
}

func TestLineariseEmptyTree(t *testing.T) {
	root := ptree.NewInterior()
	tbits, lvals := ptree.Linearise(root, 2, 4, nil)
	assert.Nil(t, tbits)
	assert.Nil(t, lvals)
}

func TestLineariseTwoLevels(t *testing.T) {
	root := ptree.NewInterior()
	ptree.Insert(root, 2, 8, 0, 0, "a")
	ptree.Insert(root, 2, 8, 7, 7, "b")

	tbits, lvals := ptree.Linearise(root, 2, 8, nil)

	ones := 0
	for _, b := range tbits {
		if b {
			ones++
		}
	}
	// root level: 2 distinct quadrants touched; each of those quadrants
	// has exactly one occupied grandchild slot at the next level down.
	assert.Equal(t, 4, ones)

	nonNil := 0
	for _, v := range lvals {
		if v != nil {
			nonNil++
		}
	}
	assert.Equal(t, 2, nonNil)
}

func TestNodeChildCompaction(t *testing.T) {
	n := ptree.NewInterior()
	assert.Nil(t, n.Child(0))

	n.SetChild(3, ptree.NewLeaf("x"))
	n.SetChild(0, ptree.NewLeaf("y"))
	n.SetChild(1, ptree.NewLeaf("z"))

	assert.Equal(t, "y", n.Child(0).Value())
	assert.Equal(t, "z", n.Child(1).Value())
	assert.Nil(t, n.Child(2))
	assert.Equal(t, "x", n.Child(3).Value())
	assert.Equal(t, []int{0, 1, 3}, n.ChildSlots(4))
}
