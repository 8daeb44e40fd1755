package bitvector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postfix/k2trees/bitvector"
)

func TestBitVectorGetSet(t *testing.T) {
	bv := bitvector.NewBitVector(130)
	require.Equal(t, 130, bv.Len())

	bv.Set(0, true)
	bv.Set(63, true)
	bv.Set(64, true)
	bv.Set(129, true)

	for i := 0; i < 130; i++ {
		want := i == 0 || i == 63 || i == 64 || i == 129
		assert.Equal(t, want, bv.Get(i), "bit %d", i)
	}
}

func TestRankDictionary(t *testing.T) {
	bv := bitvector.NewBitVector(8)
	for _, i := range []int{1, 2, 5} {
		bv.Set(i, true)
	}
	r := bitvector.BuildRank(bv)

	assert.Equal(t, 0, r.Rank1(0))
	assert.Equal(t, 0, r.Rank1(1))
	assert.Equal(t, 1, r.Rank1(2))
	assert.Equal(t, 2, r.Rank1(3))
	assert.Equal(t, 2, r.Rank1(5))
	assert.Equal(t, 3, r.Rank1(6))
	assert.Equal(t, 3, r.Rank1(8))
}

func TestRankDictionaryAcrossWords(t *testing.T) {
	n := 200
	bv := bitvector.NewBitVector(n)
	set := map[int]bool{0: true, 63: true, 64: true, 127: true, 128: true, 199: true}
	for i := range set {
		bv.Set(i, true)
	}
	r := bitvector.BuildRank(bv)

	want := 0
	for i := 0; i <= n; i++ {
		assert.Equal(t, want, r.Rank1(i), "rank1(%d)", i)
		if set[i] {
			want++
		}
	}
}

func TestRankDictionaryRebuild(t *testing.T) {
	bv := bitvector.NewBitVector(4)
	bv.Set(1, true)
	r := bitvector.BuildRank(bv)
	assert.Equal(t, 1, r.Rank1(4))

	bv2 := bitvector.NewBitVector(4)
	bv2.Set(0, true)
	bv2.Set(1, true)
	bv2.Set(2, true)
	r.Rebuild(bv2)
	assert.Equal(t, 3, r.Rank1(4))
}

func TestDynamicRank(t *testing.T) {
	d := bitvector.NewDynamicRank([]bool{false, true, false, true})
	assert.Equal(t, 0, d.Rank1(0))
	assert.Equal(t, 0, d.Rank1(1))
	assert.Equal(t, 1, d.Rank1(2))
	assert.Equal(t, 1, d.Rank1(3))
	assert.Equal(t, 2, d.Rank1(4))

	d.IncreaseFrom(2) // simulate a zero->one flip at position 1
	assert.Equal(t, 0, d.Rank1(0))
	assert.Equal(t, 0, d.Rank1(1))
	assert.Equal(t, 2, d.Rank1(2))
	assert.Equal(t, 2, d.Rank1(3))
	assert.Equal(t, 3, d.Rank1(4))
}

func TestDynamicRankInsertZeros(t *testing.T) {
	d := bitvector.NewDynamicRank([]bool{true, true})
	require.Equal(t, 2, d.Rank1(2))

	d.InsertZeros(1, 3)
	assert.Equal(t, 1, d.Rank1(1))
	assert.Equal(t, 1, d.Rank1(2))
	assert.Equal(t, 1, d.Rank1(3))
	assert.Equal(t, 1, d.Rank1(4))
	assert.Equal(t, 2, d.Rank1(5))
}
