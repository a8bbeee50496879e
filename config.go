package verkle

import "github.com/claude-does-go/verkle/ipa"

// NodeWidth is the trie's branching factor n from spec §3: 256 children per
// internal node, 256 suffixes per stem, matching the IPA committer's domain
// size.
const NodeWidth = ipa.DomainSize

// StemSize and KeySize fix the key layout from spec §3: a 32-byte key splits
// into a 31-byte stem (the internal-node path) and a 1-byte suffix (the leaf
// slot).
const (
	StemSize = 31
	KeySize  = 32
)

// GetConfig returns the package-wide IPA committer singleton every node in
// the trie commits against.
func GetConfig() *ipa.Config {
	return ipa.GetConfig()
}
