package verkle

import (
	"github.com/claude-does-go/verkle/crypto"
	"github.com/claude-does-go/verkle/ipa"
)

// VerkleNode is the tagged sum from spec §9: a node is exactly one of Empty,
// *LeafNode or *InternalNode. There is no HashedNode variant here (unlike the
// teacher's stateless-witness tree) since this module always holds a
// fully-materialized trie; every commitment is computed from real children,
// never assumed from a bare hash.
type VerkleNode interface {
	isVerkleNode()
}

// Empty is the zero node: an unset child slot, or a brand-new tree's root. It
// contributes the zero vector entry to its parent's commitment (spec §4.5:
// "absent children contribute 0").
type Empty struct{}

func (Empty) isVerkleNode() {}

func (*LeafNode) isVerkleNode() {}

func (*InternalNode) isVerkleNode() {}

// isEmpty reports whether n is a nil interface value or an Empty{} — both
// arise naturally from a zero-value [256]VerkleNode children array and must
// be treated identically.
func isEmpty(n VerkleNode) bool {
	if n == nil {
		return true
	}
	_, ok := n.(Empty)
	return ok
}

// HashCommitment is h(C) from spec §3: the Poseidon-based scalarization of a
// child's commitment used to embed it in its parent's evaluation vector. It
// is deliberately distinct from crypto.ToFr/Point.MapToScalarField, which is
// the external library's own cheap map-to-scalar trick reserved for its
// internal SRS-derivation needs, not this trie's normative child hash.
func HashCommitment(c *crypto.Point) crypto.Fr {
	t := ipa.NewTranscript("verkle_node_hash")
	t.AppendPoint(c)
	return t.ChallengeScalar()
}
