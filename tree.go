package verkle

import (
	"bytes"

	"golang.org/x/sync/errgroup"

	"github.com/claude-does-go/verkle/crypto"
)

// Tree is the root handle onto a verkle trie (spec §3/§4.5). The zero value
// behaves as an empty tree, the same as the one New returns.
type Tree struct {
	root VerkleNode
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: Empty{}}
}

func checkKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidLength
	}
	return nil
}

// Insert sets key's value, creating or splitting nodes as needed (spec
// §4.5). value must be at most 32 bytes.
func (t *Tree) Insert(key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if len(value) > 32 {
		return ErrInvalidLength
	}
	newRoot, err := insertNode(t.root, key, value, 0)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// Get returns the value stored at key, or nil if key is absent.
func (t *Tree) Get(key []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return getNode(t.root, key, 0), nil
}

// Remove deletes key's value if present. It reports whether anything was
// removed. Unlike a stateless witness tree's zero-write deletion, this is a
// true removal: an emptied leaf collapses to Empty (spec §4.5). Sibling
// internal nodes are never collapsed — a verkle trie's shape is keyed only
// by stem bytes, so an internal node with a single remaining child stays in
// place, matching original_source/src/verkle_tree/mod.rs's post-removal
// AbsentEmpty trace.
func (t *Tree) Remove(key []byte) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	newRoot, removed, err := removeNode(t.root, key, 0)
	if err != nil {
		return false, err
	}
	t.root = newRoot
	return removed, nil
}

// ComputeCommitment recomputes every dirty node's commitment bottom-up and
// returns the root commitment (spec §4.5).
func (t *Tree) ComputeCommitment() (crypto.Point, error) {
	c, _, err := computeCommitment(t.root)
	return c, err
}

func insertNode(n VerkleNode, key, value []byte, depth int) (VerkleNode, error) {
	switch node := n.(type) {
	case nil, Empty:
		leaf := &LeafNode{stem: append([]byte(nil), key[:StemSize]...), depth: depth}
		leaf.setValue(key[StemSize], value)
		return leaf, nil

	case *LeafNode:
		if bytes.Equal(node.stem, key[:StemSize]) {
			node.setValue(key[StemSize], value)
			return node, nil
		}
		return splitLeaf(node, key, value, depth)

	case *InternalNode:
		idx := key[depth]
		child, err := insertNode(node.children[idx], key, value, depth+1)
		if err != nil {
			return nil, err
		}
		node.children[idx] = child
		node.dirty = true
		node.commitment = nil
		return node, nil
	}
	return nil, ErrInvariantViolation
}

// splitLeaf replaces a leaf whose stem doesn't match key with a chain of
// internal nodes down to the first byte at which the two stems differ, with
// the old and new leaves as siblings there (spec §4.5 "split on insert").
func splitLeaf(oldLeaf *LeafNode, key, value []byte, depth int) (VerkleNode, error) {
	firstDiff := depth
	for key[firstDiff] == oldLeaf.stem[firstDiff] {
		firstDiff++
	}

	newLeaf := &LeafNode{stem: append([]byte(nil), key[:StemSize]...), depth: firstDiff + 1}
	newLeaf.setValue(key[StemSize], value)

	oldLeaf.depth = firstDiff + 1

	branch := newInternalNode(firstDiff)
	branch.children[oldLeaf.stem[firstDiff]] = oldLeaf
	branch.children[key[firstDiff]] = newLeaf

	var node VerkleNode = branch
	for d := firstDiff - 1; d >= depth; d-- {
		parent := newInternalNode(d)
		parent.children[key[d]] = node
		node = parent
	}
	return node, nil
}

func getNode(n VerkleNode, key []byte, depth int) []byte {
	switch node := n.(type) {
	case nil, Empty:
		return nil
	case *LeafNode:
		if !bytes.Equal(node.stem, key[:StemSize]) {
			return nil
		}
		return node.values[key[StemSize]]
	case *InternalNode:
		return getNode(node.children[key[depth]], key, depth+1)
	}
	return nil
}

func removeNode(n VerkleNode, key []byte, depth int) (VerkleNode, bool, error) {
	switch node := n.(type) {
	case nil, Empty:
		return Empty{}, false, nil

	case *LeafNode:
		if !bytes.Equal(node.stem, key[:StemSize]) {
			return node, false, nil
		}
		suffix := key[StemSize]
		if _, ok := node.values[suffix]; !ok {
			return node, false, nil
		}
		delete(node.values, suffix)
		node.commitment = nil
		if len(node.values) == 0 {
			return Empty{}, true, nil
		}
		return node, true, nil

	case *InternalNode:
		idx := key[depth]
		child, removed, err := removeNode(node.children[idx], key, depth+1)
		if err != nil || !removed {
			return node, removed, err
		}
		node.children[idx] = child
		node.dirty = true
		node.commitment = nil
		return node, true, nil
	}
	return nil, false, ErrInvariantViolation
}

// GetCommitmentsAlongPath is the batch witness-extraction entry point from
// spec §3.1/§4.5: for each requested key, walk root-to-leaf recording every
// (C, z, y) opening along the way, then merge and deduplicate identical
// (C, z) pairs across keys (spec §3.1's "VerkleProof::create builds the list
// for a set of keys in one pass"). The tree must already have a fresh
// commitment (ComputeCommitment called since the last mutation); per-key
// descents only read cached commitments, so they fan out over errgroup
// (spec §4.4.1/§5's read-only-during-proof-construction contract).
func (t *Tree) GetCommitmentsAlongPath(keys [][]byte) (*ProofElements, error) {
	for _, key := range keys {
		if err := checkKey(key); err != nil {
			return nil, err
		}
	}

	extras := make([]ExtraProofData, len(keys))
	perKey := make([][]opening, len(keys))

	var g errgroup.Group
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			extra, openings, err := collectKeyProof(t.root, key, 0)
			if err != nil {
				return err
			}
			extras[i] = extra
			perKey[i] = openings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ce := CommitmentElements{}
	seen := make(map[string]int)
	for _, openings := range perKey {
		for _, o := range openings {
			raw := o.c.BytesUncompressed()
			key := string(raw[:]) + string([]byte{byte(o.z), byte(o.z >> 8)})
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = len(ce.Cs)
			ce.Cs = append(ce.Cs, o.c)
			ce.Zs = append(ce.Zs, o.z)
			ce.Ys = append(ce.Ys, o.y)
			ce.Fs = append(ce.Fs, o.f)
		}
	}

	return &ProofElements{Commitments: ce, ExtraData: extras}, nil
}

// collectKeyProof walks from n toward key, returning the openings gathered
// along the way together with the query's extension status (spec §4.5).
func collectKeyProof(n VerkleNode, key []byte, depth int) (ExtraProofData, []opening, error) {
	switch node := n.(type) {
	case nil, Empty:
		return ExtraProofData{extStatus: ExtStatusAbsentEmpty, depth: depth}, nil, nil

	case *LeafNode:
		if node.commitment == nil {
			return ExtraProofData{}, nil, ErrInvariantViolation
		}
		var openings []opening
		openings = append(openings,
			opening{*node.commitment, 0, node.stemPoly[0], node.stemPoly[:]},
			opening{*node.commitment, 1, node.stemPoly[1], node.stemPoly[:]},
		)

		if !bytes.Equal(node.stem, key[:StemSize]) {
			stem := append([]byte(nil), node.stem...)
			return ExtraProofData{extStatus: ExtStatusAbsentOther, depth: depth, PoaStem: stem}, openings, nil
		}

		if node.hasC1 {
			openings = append(openings, opening{*node.commitment, 2, node.stemPoly[2], node.stemPoly[:]})
		}
		if node.hasC2 {
			openings = append(openings, opening{*node.commitment, 3, node.stemPoly[3], node.stemPoly[:]})
		}

		suffix := key[StemSize]
		if value, ok := node.values[suffix]; ok && value != nil {
			var sub *crypto.Point
			var poly *[256]crypto.Fr
			localIdx := int(suffix)
			if suffix < 128 {
				sub, poly = node.c1, &node.c1poly
			} else {
				sub, poly = node.c2, &node.c2poly
				localIdx -= 128
			}
			lo, hi := 2*localIdx, 2*localIdx+1
			openings = append(openings,
				opening{*sub, lo, poly[lo], poly[:]},
				opening{*sub, hi, poly[hi], poly[:]},
			)
		}
		return ExtraProofData{extStatus: ExtStatusPresent, depth: depth}, openings, nil

	case *InternalNode:
		idx := key[depth]
		if node.commitment == nil {
			return ExtraProofData{}, nil, ErrInvariantViolation
		}
		self := opening{*node.commitment, int(idx), node.childHashes[idx], node.childHashes[:]}
		child := node.children[idx]
		if isEmpty(child) {
			return ExtraProofData{extStatus: ExtStatusAbsentEmpty, depth: depth}, []opening{self}, nil
		}
		extra, rest, err := collectKeyProof(child, key, depth+1)
		if err != nil {
			return ExtraProofData{}, nil, err
		}
		return extra, append([]opening{self}, rest...), nil
	}
	return ExtraProofData{}, nil, ErrInvariantViolation
}
