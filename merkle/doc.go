package merkle

/*

# Fixed shape binary merkle trees for transaction inclusion proofs

This package implements the bitcoin block commitment tree: a binary
merkle tree whose shape is fully determined by its leaf count, with
the double-SHA256 parent rule and the odd-level last-hash duplication.

The shape for a given total is a grid of maxDepth+1 levels, where
maxDepth = ceil(log2(total)). Level 0 holds the single root, level
maxDepth holds the total leaves, and level d holds

	ceil(total / 2^(maxDepth - d))

slots. For 5 leaves the grid looks like

	0                root
	               /      \
	1            .          .
	           /   \         \
	2         .     .         .
	         / \   / \       /
	3       a   b c   d     e

Note the right edge: when a level has odd length its last hash is
duplicated to compute the parent, but the duplicate is never stored.
A node whose child level ends at an odd index therefore has no stored
right child, and the traversal treats the left child as standing in
for it. The duplication means a block whose last two transactions are
truly identical commits to the same root as one where the last was
duplicated; that is a known, accepted property of this scheme.

Two representations are provided:

  - Tree: built in one shot from a complete ordered leaf list, every
    slot populated. This is the producer side, a full node assembling
    a block.
  - PartialTree: the same grid with slots individually unset, plus a
    (depth, index) traversal cursor. This is the consumer side, a
    light client resolving a root from the subset of hashes a
    merkleblock message supplies.

BuildProof and DecodeProof are inverses over the compact flag-bit
encoding: a depth first pre-order walk that emits (or consumes) one
bit per visited node. A 0 bit says the node's hash is supplied
directly and the branch below it is elided; a 1 bit at an internal
node says descend; a 1 bit at a leaf says the leaf's hash is supplied
and the leaf is a proof target (a matched leaf).

All hashes in this package are in internal byte order, exactly as the
hash function produces them. Conversion to and from the reversed
display convention used by block explorers and header fields happens
only at the Hash hex boundary (HashFromHex, Hash.String); nothing in
the tree code reverses bytes.

*/
