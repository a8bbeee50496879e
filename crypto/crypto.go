// Package crypto wraps the scalar field F, point group G and Poseidon field P
// that the verkle accumulator is built over. Everything in this file is a thin
// adapter around external field/group arithmetic (crate-crypto/go-ipa,
// consensys/gnark-crypto); no protocol logic lives here.
package crypto

import (
	"errors"
	"math/big"

	"github.com/crate-crypto/go-ipa/bandersnatch/fr"
	"github.com/crate-crypto/go-ipa/banderwagon"
	"github.com/crate-crypto/go-ipa/ipa"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type (
	// Fr is the commitment group's scalar field, F in the spec.
	Fr = fr.Element
	// Point is the commitment group, G in the spec.
	Point = banderwagon.Element
	// PElement is the Poseidon sponge's native field, P in the spec. It is a
	// different prime than Fr: BN254's scalar field rather than bandersnatch's,
	// so conversions between the two are genuine cross-field reductions and not
	// a same-field identity.
	PElement = bn254fr.Element
)

const (
	// SerializedPointUncompressedSize is the byte length of Point.BytesUncompressed().
	SerializedPointUncompressedSize = 64
	// SerializedFrSize is the canonical little-endian byte length of Fr.
	SerializedFrSize = 32
)

var (
	// ErrNonCanonicalScalar is returned by strict decoders when the input bytes
	// encode a value greater than or equal to the field modulus.
	ErrNonCanonicalScalar = errors.New("crypto: non-canonical scalar")
	// ErrNotOnCurve is returned when deserialized point bytes don't satisfy the
	// curve equation.
	ErrNotOnCurve = errors.New("crypto: point not on curve")
	// ErrWrongLength is returned when a byte slice has the wrong length for the
	// target type.
	ErrWrongLength = errors.New("crypto: wrong byte length")
)

// Generator is the fixed banderwagon group generator, re-exported so callers
// outside this package never import crate-crypto/go-ipa/banderwagon directly.
var Generator = banderwagon.Generator

func CopyFr(dst, src *Fr) {
	*dst = *src
}

func CopyPoint(dst, src *Point) {
	dst.Set(src)
}

// ToFr maps a group element to a scalar via the group's native
// map-to-scalar-field trick. This is NOT the Poseidon-based h(C) the spec uses
// to scalarize a child's commitment for its parent (see HashCommitment); no
// code in this module calls it.
func ToFr(dst *Fr, p *Point) {
	p.MapToScalarField(dst)
}

func ToFrMultiple(res []*Fr, ps []*Point) {
	banderwagon.MultiMapToScalarField(res, ps)
}

// FrFromLEBytes reads up to 32 little-endian bytes into fr without checking
// canonicity; used for hash-absorption style reads, not wire decoding.
func FrFromLEBytes(dst *Fr, data []byte) error {
	if len(data) > SerializedFrSize {
		return ErrWrongLength
	}
	var aligned [SerializedFrSize]byte
	copy(aligned[:], data)
	dst.SetBytesLE(aligned[:])
	return nil
}

// FrFromBytes reads big-endian bytes into fr, right-aligned, without checking
// canonicity.
func FrFromBytes(dst *Fr, data []byte) {
	var aligned [SerializedFrSize]byte
	copy(aligned[SerializedFrSize-len(data):], data)
	dst.SetBytes(aligned[:])
}

// FrFromCanonicalLEBytes is the strict wire-decoding counterpart of
// FrFromLEBytes: it rejects byte strings that encode a value at or above the
// field modulus, per spec §6/§9's strict-deserialization requirement.
func FrFromCanonicalLEBytes(dst *Fr, data []byte) error {
	if len(data) != SerializedFrSize {
		return ErrWrongLength
	}
	var candidate Fr
	candidate.SetBytesLE(data)
	var roundTrip [SerializedFrSize]byte
	roundTrip = candidate.BytesLE()
	for i := range roundTrip {
		if roundTrip[i] != data[i] {
			return ErrNonCanonicalScalar
		}
	}
	*dst = candidate
	return nil
}

func Equal(a, b *Point) bool {
	return a.Equal(b)
}

// NewIPASettings derives the SRS generator vector {G_i} via the external
// library's hash-to-curve machinery. This is explicitly out of scope per
// spec §1 ("the underlying field arithmetic and curve group ... external
// collaborators"); only the generator vector itself is consumed by this
// module's own IPA/commitment code.
func NewIPASettings() *ipa.IPAConfig {
	return ipa.NewIPASettings()
}

func ElementsToBytesUncompressed(elements []*Point) [][SerializedPointUncompressedSize]byte {
	return banderwagon.ElementsToBytesUncompressed(elements)
}

// RNSLimbCount and RNSLimbBits fix the normative RNS decomposition scheme
// from spec §4.1/§6: four 68-bit limbs, little-endian.
const (
	RNSLimbCount = 4
	RNSLimbBits  = 68
)

// RNSLimbs splits a little-endian 32-byte field element into four 68-bit
// limbs, returned as F elements (ready for Transcript.commit_field_element).
// The limb boundaries are a fixed interoperability parameter (spec §6/§9) and
// must not change independently of any in-circuit verifier.
func RNSLimbs(leBytes [32]byte) [RNSLimbCount]Fr {
	v := new(big.Int).SetBytes(reverse(leBytes[:]))
	mask := new(big.Int).Lsh(big.NewInt(1), RNSLimbBits)
	mask.Sub(mask, big.NewInt(1))

	var limbs [RNSLimbCount]Fr
	tmp := new(big.Int)
	for i := 0; i < RNSLimbCount; i++ {
		tmp.Rsh(v, uint(i*RNSLimbBits))
		tmp.And(tmp, mask)
		limbs[i].SetBigInt(tmp)
	}
	return limbs
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// PFromFr converts an F element to a P element. Both fields fit in 256 bits;
// since their moduli differ (bandersnatch Fr vs BN254 Fr) this is a genuine
// reduction, performed by a wrapping big.Int mod-reduce rather than a
// canonicity check — the relaxed path spec §9 says to keep for Poseidon
// absorption.
func PFromFr(e *Fr) PElement {
	var bi big.Int
	e.ToBigIntRegular(&bi)
	var p PElement
	p.SetBigInt(&bi)
	return p
}

// FrFromP converts a P element back to F, by the same wrapping reduction.
func FrFromP(e *PElement) Fr {
	var bi big.Int
	e.ToBigIntRegular(&bi)
	var f Fr
	f.SetBigInt(&bi)
	return f
}
