package verkle

import "github.com/claude-does-go/verkle/crypto"

// InternalNode is the branch node from spec §3: 256 children, committed as
// C = Commit([h(child_0), ..., h(child_255)]).
type InternalNode struct {
	children [NodeWidth]VerkleNode
	depth    int

	dirty       bool
	childHashes [NodeWidth]crypto.Fr
	commitment  *crypto.Point
}

func newInternalNode(depth int) *InternalNode {
	return &InternalNode{depth: depth, dirty: true}
}
