package ipa

import (
	"github.com/claude-does-go/verkle/crypto"
)

// maxDomainTagLen bounds new_with_domain's input, spec §4.1: "a little-endian
// read of ≤31 bytes of a domain tag".
const maxDomainTagLen = 31

// Transcript is the Fiat-Shamir state machine from spec §4.1: a single
// scalar s in P (the Poseidon field), grown by absorbing F scalars, G
// points (via RNS limbs) and raw bytes, and read non-destructively via
// ChallengeScalar.
type Transcript struct {
	state crypto.PElement
}

// NewTranscript starts a transcript from a little-endian read of a domain
// tag, e.g. "multi_proof" or "ipa" (spec §6's normative domain-separation
// tags).
func NewTranscript(domain string) *Transcript {
	if len(domain) > maxDomainTagLen {
		panic("ipa: domain tag exceeds 31 bytes")
	}
	return &Transcript{state: crypto.PFromLEBytes([]byte(domain))}
}

// AppendScalar commits an F element: s <- Poseidon2(s, to_P(e)).
func (t *Transcript) AppendScalar(e *crypto.Fr) {
	t.state = crypto.Poseidon2(t.state, crypto.PFromFr(e))
}

func (t *Transcript) AppendScalars(es []crypto.Fr) {
	for i := range es {
		t.AppendScalar(&es[i])
	}
}

// AppendPoint commits a G element by decomposing its x and y coordinates
// into RNS limbs (four 68-bit limbs each, little-endian) and committing each
// limb as an F scalar, per spec §4.1's normative commit_point contract.
func (t *Transcript) AppendPoint(p *crypto.Point) {
	raw := p.BytesUncompressed()
	var x, y [32]byte
	copy(x[:], raw[:32])
	copy(y[:], raw[32:])

	for _, limb := range crypto.RNSLimbs(x) {
		t.AppendScalar(&limb)
	}
	for _, limb := range crypto.RNSLimbs(y) {
		t.AppendScalar(&limb)
	}
}

func (t *Transcript) AppendPoints(ps []crypto.Point) {
	for i := range ps {
		t.AppendPoint(&ps[i])
	}
}

// AppendBytes commits an arbitrary byte string in 31-byte chunks, each read
// as an F element and committed via AppendScalar.
func (t *Transcript) AppendBytes(b []byte) {
	for len(b) > 0 {
		chunkLen := maxDomainTagLen
		if len(b) < chunkLen {
			chunkLen = len(b)
		}
		var e crypto.Fr
		_ = crypto.FrFromLEBytes(&e, b[:chunkLen])
		t.AppendScalar(&e)
		b = b[chunkLen:]
	}
}

// ChallengeScalar returns to_F(s). The transcript state is not reset:
// calling this twice without an intervening Append returns the same
// challenge, as spec §4.1 requires.
func (t *Transcript) ChallengeScalar() crypto.Fr {
	return crypto.FrFromP(&t.state)
}
