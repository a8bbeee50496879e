package verkle

import (
	"math/big"

	"github.com/claude-does-go/verkle/crypto"
)

// LeafNode is the stem-level leaf from spec §3: a 31-byte stem plus up to 256
// suffix values, committed as C1 (suffixes 0-127) and C2 (suffixes 128-255),
// folded into the outer commitment C = Commit([1, stem, h(C1), h(C2), 0...]),
// where the h(C1) or h(C2) slot is 0 while that half holds no value.
type LeafNode struct {
	stem   []byte
	values map[byte][]byte // nil value slot absent; present entries are <=32 bytes
	depth  int

	hasC1, hasC2   bool
	c1, c2         *crypto.Point
	c1poly, c2poly [256]crypto.Fr // the sub-commitment vectors, cached for proof openings
	stemPoly       [256]crypto.Fr // the outer vector this leaf last committed, cached for proof openings
	commitment     *crypto.Point
}

// twoPow128 is the presence marker added to a value half's low limb (spec
// §3: "lo(v_s) + 2^128"), distinguishing an explicitly-stored zero value from
// an absent suffix.
var twoPow128 = func() crypto.Fr {
	bi := new(big.Int).Lsh(big.NewInt(1), 128)
	var f crypto.Fr
	f.SetBigInt(bi)
	return f
}()

func (n *LeafNode) setValue(suffix byte, value []byte) {
	if n.values == nil {
		n.values = make(map[byte][]byte)
	}
	n.values[suffix] = value
	n.commitment = nil
}

// leafToComms splits a <=32-byte value into its two Fr-valued halves per
// spec §3, writing them into vs[0] (lo, marked present) and vs[1] (hi).
func leafToComms(vs []crypto.Fr, value []byte) error {
	if len(value) > 32 {
		return ErrInvalidLength
	}
	var lo, hi [16]byte
	n := len(value)
	if n > 16 {
		copy(lo[:], value[:16])
		copy(hi[:], value[16:n])
	} else {
		copy(lo[:], value[:n])
	}

	var loFr, hiFr crypto.Fr
	if err := crypto.FrFromLEBytes(&loFr, lo[:]); err != nil {
		return err
	}
	if err := crypto.FrFromLEBytes(&hiFr, hi[:]); err != nil {
		return err
	}
	loFr.Add(&loFr, &twoPow128)
	vs[0] = loFr
	vs[1] = hiFr
	return nil
}

// fillSuffixTreePoly fills poly[2*i]/poly[2*i+1] with the value halves for
// each present entry of a 128-wide value-half slice, leaving absent slots at
// their Go zero value (which is Fr's additive identity).
func fillSuffixTreePoly(poly []crypto.Fr, values []([]byte)) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		var vs [2]crypto.Fr
		if err := leafToComms(vs[:], v); err != nil {
			return err
		}
		poly[2*i] = vs[0]
		poly[2*i+1] = vs[1]
	}
	return nil
}

// ComputeCommitment (re)computes this leaf's C, C1 and C2 from its current
// values (spec §4.5). It is idempotent and always refreshes the cache, since
// the caller (computeCommitment) only calls it while the leaf's cached
// commitment is nil.
func (n *LeafNode) ComputeCommitment() (*crypto.Point, error) {
	cfg := GetConfig()

	var lowerValues, upperValues [128][]byte
	n.hasC1, n.hasC2 = false, false
	for s, v := range n.values {
		if v == nil {
			continue
		}
		if s < 128 {
			lowerValues[s] = v
			n.hasC1 = true
		} else {
			upperValues[s-128] = v
			n.hasC2 = true
		}
	}

	var c1poly, c2poly [256]crypto.Fr
	if err := fillSuffixTreePoly(c1poly[:], lowerValues[:]); err != nil {
		return nil, err
	}
	if err := fillSuffixTreePoly(c2poly[:], upperValues[:]); err != nil {
		return nil, err
	}
	n.c1poly, n.c2poly = c1poly, c2poly
	c1, err := cfg.CommitLagrange(c1poly[:])
	if err != nil {
		return nil, err
	}
	c2, err := cfg.CommitLagrange(c2poly[:])
	if err != nil {
		return nil, err
	}
	n.c1, n.c2 = &c1, &c2

	var poly [256]crypto.Fr
	poly[0] = crypto.FrFromUint64(1)
	if err := crypto.FrFromLEBytes(&poly[1], n.stem); err != nil {
		return nil, err
	}
	if n.hasC1 {
		poly[2] = HashCommitment(&c1)
	}
	if n.hasC2 {
		poly[3] = HashCommitment(&c2)
	}
	n.stemPoly = poly

	comm, err := cfg.CommitLagrange(poly[:])
	if err != nil {
		return nil, err
	}
	n.commitment = &comm
	return &comm, nil
}
