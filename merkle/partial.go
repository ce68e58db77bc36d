package merkle

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// PartialTree is a sparse tree of the fixed shape implied by its leaf
// total. Slots are individually unset until something stores them; a
// bitset per level tracks population rather than reserving a sentinel
// hash value. The traversal cursor (depth, index) is owned by the
// reconstruction loops and has no meaning outside one.
//
// A PartialTree is single owner state: it must not be shared across
// goroutines without external synchronization. Distinct instances
// are fully independent.
type PartialTree struct {
	total    uint64
	maxDepth int
	levels   [][]Hash
	have     []*bitset.BitSet

	depth int
	index uint64
}

// NewPartialTree allocates the level grid for total leaves with every
// slot unset and the cursor at the root position (0, 0).
func NewPartialTree(total uint64) (*PartialTree, error) {
	if total == 0 {
		return nil, ErrEmptyLeafSet
	}
	if total > MaxProofLeaves {
		return nil, fmt.Errorf("%w: %d leaves, limit %d", ErrTotalTooLarge, total, MaxProofLeaves)
	}
	maxDepth := treeDepth(total)
	levels := make([][]Hash, maxDepth+1)
	have := make([]*bitset.BitSet, maxDepth+1)
	for d := 0; d <= maxDepth; d++ {
		width := levelWidth(total, maxDepth, d)
		levels[d] = make([]Hash, width)
		have[d] = bitset.New(uint(width))
	}
	return &PartialTree{total: total, maxDepth: maxDepth, levels: levels, have: have}, nil
}

// Total returns the leaf count the shape was derived from.
func (p *PartialTree) Total() uint64 {
	return p.total
}

// MaxDepth returns the depth of the leaf level.
func (p *PartialTree) MaxDepth() int {
	return p.maxDepth
}

// Cursor returns the current traversal position.
func (p *PartialTree) Cursor() (depth int, index uint64) {
	return p.depth, p.index
}

// Up moves the cursor to the parent of the current node. Illegal at
// the root.
func (p *PartialTree) Up() error {
	if p.depth == 0 {
		return fmt.Errorf("%w: up from the root", ErrCursorOutOfBounds)
	}
	p.depth--
	p.index /= 2
	return nil
}

// Left moves the cursor to the left child of the current node.
// Illegal at a leaf.
func (p *PartialTree) Left() error {
	if p.depth == p.maxDepth {
		return fmt.Errorf("%w: no children below a leaf", ErrCursorOutOfBounds)
	}
	p.depth++
	p.index *= 2
	return nil
}

// Right moves the cursor to the right child of the current node.
// Illegal at a leaf, and illegal where RightExists is false: the
// right edge duplicate of an odd child level is computed, never
// stored, so there is nothing to move to.
func (p *PartialTree) Right() error {
	if p.depth == p.maxDepth {
		return fmt.Errorf("%w: no children below a leaf", ErrCursorOutOfBounds)
	}
	if !p.RightExists() {
		return fmt.Errorf("%w: no right child under depth %d index %d", ErrCursorOutOfBounds, p.depth, p.index)
	}
	p.depth++
	p.index = p.index*2 + 1
	return nil
}

// IsLeaf reports whether the cursor is on the leaf level.
func (p *PartialTree) IsLeaf() bool {
	return p.depth == p.maxDepth
}

// RightExists reports whether the current node has a stored right
// child slot. False exactly at the right most node of a level whose
// child level has odd length.
func (p *PartialTree) RightExists() bool {
	if p.depth == p.maxDepth {
		return false
	}
	return p.index*2+1 < uint64(len(p.levels[p.depth+1]))
}

// SetCurrent stores a hash into the slot under the cursor.
func (p *PartialTree) SetCurrent(h Hash) {
	p.set(p.depth, p.index, h)
}

// Current reads the slot under the cursor. ok is false for an unset
// slot so callers can branch on it rather than handle an error.
func (p *PartialTree) Current() (Hash, bool) {
	return p.get(p.depth, p.index)
}

// LeftChild reads the left child slot of the current node.
func (p *PartialTree) LeftChild() (Hash, bool) {
	return p.get(p.depth+1, p.index*2)
}

// RightChild reads the right child slot of the current node. ok is
// false both for an unset slot and where no right child exists.
func (p *PartialTree) RightChild() (Hash, bool) {
	return p.get(p.depth+1, p.index*2+1)
}

// SetLeaf stores a leaf hash by leaf index, independent of the
// cursor. This is how callers pre-populate leaves before ResolveRoot.
func (p *PartialTree) SetLeaf(i uint64, h Hash) error {
	if i >= p.total {
		return fmt.Errorf("%w: leaf %d of %d", ErrCursorOutOfBounds, i, p.total)
	}
	p.set(p.maxDepth, i, h)
	return nil
}

// Leaf reads a leaf slot by index, independent of the cursor.
func (p *PartialTree) Leaf(i uint64) (Hash, bool) {
	return p.get(p.maxDepth, i)
}

func (p *PartialTree) set(depth int, index uint64, h Hash) {
	p.levels[depth][index] = h
	p.have[depth].Set(uint(index))
}

func (p *PartialTree) get(depth int, index uint64) (Hash, bool) {
	if depth < 0 || depth > p.maxDepth || index >= uint64(len(p.levels[depth])) {
		return Hash{}, false
	}
	if !p.have[depth].Test(uint(index)) {
		return Hash{}, false
	}
	return p.levels[depth][index], true
}

// ascend moves up unless already at the root. The reconstruction
// loops call it after storing a node; at the root the next iteration
// observes the populated root slot and stops, so there is nowhere to
// go.
func (p *PartialTree) ascend() error {
	if p.depth == 0 {
		return nil
	}
	return p.Up()
}

// ResolveRoot runs the depth first reconstruction over a tree whose
// leaves were pre-populated with SetLeaf. It fills every interior
// slot bottom up, left before right, and returns the root. A node
// with no stored right child combines its left child with itself,
// mirroring the odd level duplication of full construction.
//
// Each leaf is visited at most once and each interior node is
// computed exactly once, so the loop is O(total) node visits.
func (p *PartialTree) ResolveRoot() (Hash, error) {
	for {
		if root, ok := p.get(0, 0); ok {
			return root, nil
		}
		if p.IsLeaf() {
			if _, ok := p.Current(); !ok {
				return Hash{}, fmt.Errorf("%w: leaf %d is unset", ErrInsufficientHashes, p.index)
			}
			if err := p.ascend(); err != nil {
				return Hash{}, err
			}
			continue
		}
		left, ok := p.LeftChild()
		if !ok {
			if err := p.Left(); err != nil {
				return Hash{}, err
			}
			continue
		}
		if p.RightExists() {
			right, ok := p.RightChild()
			if !ok {
				if err := p.Right(); err != nil {
					return Hash{}, err
				}
				continue
			}
			p.SetCurrent(Combine(left, right))
		} else {
			p.SetCurrent(Combine(left, left))
		}
		if err := p.ascend(); err != nil {
			return Hash{}, err
		}
	}
}
