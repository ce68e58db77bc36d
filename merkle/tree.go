package merkle

import "math/bits"

// treeDepth returns ceil(log2(total)) for total >= 1, the leaf depth
// of the fixed tree shape for that many leaves.
func treeDepth(total uint64) int {
	return bits.Len64(total - 1)
}

// levelWidth returns the slot count of level depth in a tree of the
// given total: ceil(total / 2^(maxDepth - depth)). Level 0 is always
// 1 wide and level maxDepth is always total wide.
func levelWidth(total uint64, maxDepth, depth int) uint64 {
	span := uint64(1) << (maxDepth - depth)
	return (total + span - 1) / span
}

// Tree is a complete binary hash tree. levels[0] holds the single
// root, levels[maxDepth] holds the leaves verbatim, and every slot in
// between is populated at construction. A Tree is immutable once
// built.
type Tree struct {
	total    uint64
	maxDepth int
	levels   [][]Hash
}

// BuildTree constructs the full tree bottom up from an ordered leaf
// list. The leaves are copied, not referenced. Fails with
// ErrEmptyLeafSet when leaves is empty.
func BuildTree(leaves []Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyLeafSet
	}
	total := uint64(len(leaves))
	maxDepth := treeDepth(total)
	levels := make([][]Hash, maxDepth+1)
	levels[maxDepth] = append([]Hash(nil), leaves...)
	for d := maxDepth; d > 0; d-- {
		levels[d-1] = ParentLevel(levels[d])
	}
	return &Tree{total: total, maxDepth: maxDepth, levels: levels}, nil
}

// Root returns the single hash at depth 0 committing to all leaves.
func (t *Tree) Root() Hash {
	return t.levels[0][0]
}

// Total returns the leaf count the tree was built from.
func (t *Tree) Total() uint64 {
	return t.total
}

// MaxDepth returns the depth of the leaf level.
func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

// Node returns the stored hash at (depth, index). It panics on an out
// of shape position, like slice indexing; every slot of a built tree
// is populated so there is no unset case to report.
func (t *Tree) Node(depth int, index uint64) Hash {
	return t.levels[depth][index]
}
