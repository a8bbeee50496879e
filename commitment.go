package verkle

import "github.com/claude-does-go/verkle/crypto"

// computeCommitment performs the dirty-flag DFS post-order walk from spec
// §4.5: every dirty node recomputes its commitment from its (already fresh)
// children and caches both the commitment and its Poseidon hash for the
// parent to consume.
func computeCommitment(n VerkleNode) (crypto.Point, crypto.Fr, error) {
	switch node := n.(type) {
	case nil, Empty:
		var zero crypto.Point
		zero.SetIdentity()
		return zero, crypto.Fr{}, nil

	case *LeafNode:
		if node.commitment == nil {
			if _, err := node.ComputeCommitment(); err != nil {
				return crypto.Point{}, crypto.Fr{}, err
			}
		}
		return *node.commitment, HashCommitment(node.commitment), nil

	case *InternalNode:
		if !node.dirty && node.commitment != nil {
			return *node.commitment, HashCommitment(node.commitment), nil
		}
		cfg := GetConfig()
		for i, child := range node.children {
			if isEmpty(child) {
				node.childHashes[i] = crypto.Fr{}
				continue
			}
			_, h, err := computeCommitment(child)
			if err != nil {
				return crypto.Point{}, crypto.Fr{}, err
			}
			node.childHashes[i] = h
		}
		comm, err := cfg.CommitLagrange(node.childHashes[:])
		if err != nil {
			return crypto.Point{}, crypto.Fr{}, err
		}
		node.commitment = &comm
		node.dirty = false
		return comm, HashCommitment(&comm), nil
	}
	return crypto.Point{}, crypto.Fr{}, ErrInvariantViolation
}
