package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabware/skiphive/hive"
)

func TestScript_DeterministicForSeed(t *testing.T) {
	a := Script(42, 500, DefaultProfile)
	b := Script(42, 500, DefaultProfile)
	assert.Equal(t, a, b)

	c := Script(43, 500, DefaultProfile)
	assert.NotEqual(t, a, c)
}

func TestRun_UpholdsInvariantsThroughout(t *testing.T) {
	for _, seed := range []int64{1, 7, 1234} {
		h, err := hive.NewWithLimits[int](4, 64)
		require.NoError(t, err)
		ops := Script(seed, 2000, DefaultProfile)
		_, err = Run(h, ops, 25)
		require.NoError(t, err, "seed %d", seed)
	}
}

func TestApply_ClampsAgainstEmptyContainer(t *testing.T) {
	h := hive.New[int]()
	for _, op := range []Op{
		{Kind: Erase, Pos: 5},
		{Kind: EraseRange, Pos: 3, N: 4},
		{Kind: Trim},
		{Kind: Clear},
	} {
		mutated, err := Apply(h, op)
		require.NoError(t, err)
		_ = mutated
	}
	assert.Equal(t, 0, h.Len())
	require.NoError(t, h.Validate())
}
