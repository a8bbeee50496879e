package verkle

import "github.com/claude-does-go/verkle/crypto"

// ExtStatus is the Rust reference's extension status, re-expressed as a Go
// byte enum (spec §3.1/§9): whether the stem the query descended to actually
// holds the requested key, is a genuinely unset slot, or belongs to a
// different stem entirely.
type ExtStatus byte

const (
	ExtStatusPresent     ExtStatus = 1
	ExtStatusAbsentEmpty ExtStatus = 2
	ExtStatusAbsentOther ExtStatus = 3
)

// ExtraProofData packs a query's extension status and the depth at which it
// was resolved into the single encoded byte the wire format carries
// (depth<<3 | status), plus the other stem's bytes when status is
// AbsentOther (the proof-of-absence witness, "poa_stem"). The fields are
// unexported; SPEC_FULL.md §3.1's external surface is the Depth()/Status()
// accessor pair below plus the exported PoaStem.
type ExtraProofData struct {
	extStatus ExtStatus
	depth     int
	PoaStem   []byte
}

// Encoded packs Depth and ExtStatus into the single wire byte from spec §6.
func (e ExtraProofData) Encoded() byte {
	return byte(e.depth<<3) | byte(e.extStatus)
}

// Depth returns the depth at which this key's descent resolved (spec §3.1).
func (e ExtraProofData) Depth() int {
	return e.depth
}

// Status returns this key's extension status (spec §3.1).
func (e ExtraProofData) Status() int {
	return int(e.extStatus)
}

// CommitmentElements is the flat, deduplicated set of (C, z, y) opening
// claims gathered along every requested key's path (spec §3). Fs parallels
// Cs/Zs/Ys and carries the full evaluation vector behind each commitment;
// only the prover needs it.
type CommitmentElements struct {
	Cs []crypto.Point
	Zs []int
	Ys []crypto.Fr
	Fs [][]crypto.Fr
}

// ProofElements is the result of GetCommitmentsAlongPath: the deduplicated
// commitment elements plus one ExtraProofData per requested key, in request
// order.
type ProofElements struct {
	Commitments CommitmentElements
	ExtraData   []ExtraProofData
}

// opening is one (C, z, y, f) claim gathered while descending toward a single
// key, before cross-key deduplication.
type opening struct {
	c crypto.Point
	z int
	y crypto.Fr
	f []crypto.Fr
}
