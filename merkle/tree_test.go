package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeEmptyLeafSet(t *testing.T) {
	_, err := BuildTree(nil)
	assert.ErrorIs(t, err, ErrEmptyLeafSet)
}

func TestSingleLeafTreeRootIsTheLeaf(t *testing.T) {
	leaves := testLeaves(t, 1)
	tree, err := BuildTree(leaves)
	require.NoError(t, err)
	assert.Equal(t, leaves[0], tree.Root())
	assert.Equal(t, 0, tree.MaxDepth())
}

func TestOddLevelDuplication(t *testing.T) {
	leaves := testLeaves(t, 3)

	parents := ParentLevel(leaves)
	require.Len(t, parents, 2)
	assert.Equal(t, Combine(leaves[0], leaves[1]), parents[0])
	assert.Equal(t, Combine(leaves[2], leaves[2]), parents[1])
}

func TestParentLevelDoesNotMutateInput(t *testing.T) {
	leaves := testLeaves(t, 3)
	before := append([]Hash(nil), leaves...)
	_ = ParentLevel(leaves)
	assert.Equal(t, before, leaves)
}

// TestBuildTreeMatchesRepeatedReduction checks the full build against
// the naive reduce-until-one-hash definition of the root.
func TestBuildTreeMatchesRepeatedReduction(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 13, 16, 27, 33} {
		leaves := testLeaves(t, n)

		tree, err := BuildTree(leaves)
		require.NoError(t, err)

		level := append([]Hash(nil), leaves...)
		for len(level) > 1 {
			level = ParentLevel(level)
		}
		assert.Equal(t, level[0], tree.Root(), "total=%d", n)
	}
}

func TestTreeLevelWidths(t *testing.T) {
	// The 8 leaf scenario: depth 3, widths 8 -> 4 -> 2 -> 1.
	leaves := testLeaves(t, 8)
	tree, err := BuildTree(leaves)
	require.NoError(t, err)

	require.Equal(t, 3, tree.MaxDepth())
	assert.Len(t, tree.levels[3], 8)
	assert.Len(t, tree.levels[2], 4)
	assert.Len(t, tree.levels[1], 2)
	assert.Len(t, tree.levels[0], 1)

	// An unbalanced total: 5 leaves, widths 5 -> 3 -> 2 -> 1.
	leaves = testLeaves(t, 5)
	tree, err = BuildTree(leaves)
	require.NoError(t, err)

	require.Equal(t, 3, tree.MaxDepth())
	assert.Len(t, tree.levels[3], 5)
	assert.Len(t, tree.levels[2], 3)
	assert.Len(t, tree.levels[1], 2)
	assert.Len(t, tree.levels[0], 1)
}

func TestTreeNodeAgreesWithParentRule(t *testing.T) {
	leaves := testLeaves(t, 6)
	tree, err := BuildTree(leaves)
	require.NoError(t, err)

	assert.Equal(t, Combine(tree.Node(3, 0), tree.Node(3, 1)), tree.Node(2, 0))
	assert.Equal(t, Combine(tree.Node(1, 0), tree.Node(1, 1)), tree.Node(0, 0))
}

func TestTreeDepth(t *testing.T) {
	for _, tc := range []struct {
		total uint64
		depth int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {16, 4}, {17, 5},
	} {
		assert.Equal(t, tc.depth, treeDepth(tc.total), "total=%d", tc.total)
	}
}

func TestLevelWidth(t *testing.T) {
	// total=5, maxDepth=3: widths by depth are 1, 2, 3, 5.
	for depth, want := range []uint64{1, 2, 3, 5} {
		assert.Equal(t, want, levelWidth(5, 3, depth), "depth=%d", depth)
	}
}
