package verkle

import (
	"github.com/karalabe/ssz"

	"github.com/claude-does-go/verkle/crypto"
	"github.com/claude-does-go/verkle/ipa"
)

// ipaRounds is log2(NodeWidth): the fixed number of folding rounds an IPA
// proof over this module's domain always has, so the L/R vectors are
// fixed-size for SSZ purposes rather than length-prefixed.
const ipaRounds = 8

// Wire size bounds for the proof's variable-length lists (spec §6). These
// are generous upper bounds on how large a single VerkleProof is expected to
// be, not protocol parameters.
const (
	maxOtherStems      = 256
	maxRequestedKeys   = 4096
	maxPathCommitments = 8192
)

type ipaProofWire struct {
	L [ipaRounds][crypto.SerializedPointUncompressedSize]byte
	R [ipaRounds][crypto.SerializedPointUncompressedSize]byte
	A [crypto.SerializedFrSize]byte
}

func (w *ipaProofWire) SizeSSZ(sizer *ssz.Sizer) uint32 {
	return uint32(ipaRounds*2*crypto.SerializedPointUncompressedSize + crypto.SerializedFrSize)
}

func (w *ipaProofWire) DefineSSZ(codec *ssz.Codec) {
	for i := range w.L {
		ssz.DefineStaticBytes(codec, &w.L[i])
	}
	for i := range w.R {
		ssz.DefineStaticBytes(codec, &w.R[i])
	}
	ssz.DefineStaticBytes(codec, &w.A)
}

func pointToWire(p *crypto.Point) [crypto.SerializedPointUncompressedSize]byte {
	return p.BytesUncompressed()
}

// pointFromWire decodes a point from its uncompressed wire bytes. go-ipa's
// banderwagon.Element follows the same SetXxx/Xxx symmetric-accessor
// convention this module already relies on for Fr (SetBytesLE/BytesLE), so
// the encode side (BytesUncompressed, used throughout crypto/ and ipa/) has
// a matching SetBytesUncompressed decoder.
func pointFromWire(data [crypto.SerializedPointUncompressedSize]byte) (crypto.Point, error) {
	var p crypto.Point
	if err := p.SetBytesUncompressed(data[:]); err != nil {
		return crypto.Point{}, ErrNotOnCurve
	}
	return p, nil
}

func ipaProofToWire(p *ipa.Proof) ipaProofWire {
	var w ipaProofWire
	for i := range p.L {
		w.L[i] = pointToWire(&p.L[i])
	}
	for i := range p.R {
		w.R[i] = pointToWire(&p.R[i])
	}
	w.A = p.A.BytesLE()
	return w
}

func ipaProofFromWire(w *ipaProofWire) (*ipa.Proof, error) {
	proof := &ipa.Proof{L: make([]crypto.Point, ipaRounds), R: make([]crypto.Point, ipaRounds)}
	for i := range w.L {
		p, err := pointFromWire(w.L[i])
		if err != nil {
			return nil, err
		}
		proof.L[i] = p
	}
	for i := range w.R {
		p, err := pointFromWire(w.R[i])
		if err != nil {
			return nil, err
		}
		proof.R[i] = p
	}
	if err := crypto.FrFromCanonicalLEBytes(&proof.A, w.A[:]); err != nil {
		return nil, err
	}
	return proof, nil
}

// verkleProofWire is the SSZ-encodable mirror of VerkleProof (spec §6): the
// same fields, but with crypto.Point/Fr replaced by their canonical byte
// widths so karalabe/ssz can define a fixed/variable-length wire layout.
// Keys/Values are the spec §6 grammar's trailing
// "‖ u32 num_keys ‖ keys: 32B* ‖ values: 32B*" section.
type verkleProofWire struct {
	Keys                  [][KeySize]byte
	Values                [][KeySize]byte
	OtherStems            [][StemSize]byte
	DepthExtensionPresent []byte
	CommitmentsByPath     [][crypto.SerializedPointUncompressedSize]byte
	D                     [crypto.SerializedPointUncompressedSize]byte
	IPAProof              ipaProofWire
}

func (w *verkleProofWire) SizeSSZ(sizer *ssz.Sizer) uint32 {
	return ssz.SizeSliceOfStaticBytes(sizer, w.Keys) +
		ssz.SizeSliceOfStaticBytes(sizer, w.Values) +
		ssz.SizeSliceOfStaticBytes(sizer, w.OtherStems) +
		ssz.SizeDynamicBytes(sizer, w.DepthExtensionPresent) +
		ssz.SizeSliceOfStaticBytes(sizer, w.CommitmentsByPath) +
		uint32(crypto.SerializedPointUncompressedSize) +
		w.IPAProof.SizeSSZ(sizer) +
		ssz.SizeOffsetsOf(5)
}

func (w *verkleProofWire) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineSliceOfStaticBytesOffset(codec, &w.Keys, maxRequestedKeys)
	ssz.DefineSliceOfStaticBytesOffset(codec, &w.Values, maxRequestedKeys)
	ssz.DefineSliceOfStaticBytesOffset(codec, &w.OtherStems, maxOtherStems)
	ssz.DefineDynamicBytesOffset(codec, &w.DepthExtensionPresent, maxRequestedKeys)
	ssz.DefineSliceOfStaticBytesOffset(codec, &w.CommitmentsByPath, maxPathCommitments)
	ssz.DefineStaticBytes(codec, &w.D)
	ssz.DefineStaticObject(codec, &w.IPAProof)

	ssz.DefineSliceOfStaticBytesContent(codec, &w.Keys, maxRequestedKeys)
	ssz.DefineSliceOfStaticBytesContent(codec, &w.Values, maxRequestedKeys)
	ssz.DefineSliceOfStaticBytesContent(codec, &w.OtherStems, maxOtherStems)
	ssz.DefineDynamicBytesContent(codec, &w.DepthExtensionPresent, maxRequestedKeys)
	ssz.DefineSliceOfStaticBytesContent(codec, &w.CommitmentsByPath, maxPathCommitments)
}

// MarshalSSZ encodes a VerkleProof with karalabe/ssz's fixed/variable part
// layout: a fixed part holding a 4-byte offset for each of the five lists
// (Keys, Values, OtherStems, DepthExtensionPresent, CommitmentsByPath) plus
// D and the IPA proof, followed by the list contents. Lists carry no u32
// element counts, and Keys/Values come first rather than last.
func (p *VerkleProof) MarshalSSZ() ([]byte, error) {
	w := &verkleProofWire{
		DepthExtensionPresent: p.DepthExtensionPresent,
		D:                     pointToWire(&p.D),
		IPAProof:              ipaProofToWire(p.IPAProof),
	}
	w.Keys = make([][KeySize]byte, len(p.Keys))
	for i, k := range p.Keys {
		copy(w.Keys[i][:], k)
	}
	w.Values = make([][KeySize]byte, len(p.Values))
	for i, v := range p.Values {
		copy(w.Values[i][:], v)
	}
	w.OtherStems = make([][StemSize]byte, len(p.OtherStems))
	for i, s := range p.OtherStems {
		copy(w.OtherStems[i][:], s)
	}
	w.CommitmentsByPath = make([][crypto.SerializedPointUncompressedSize]byte, len(p.CommitmentsByPath))
	for i := range p.CommitmentsByPath {
		w.CommitmentsByPath[i] = pointToWire(&p.CommitmentsByPath[i])
	}
	return ssz.EncodeToBytes(w)
}

// UnmarshalSSZ decodes a VerkleProof from its wire form.
func UnmarshalSSZ(data []byte) (*VerkleProof, error) {
	w := new(verkleProofWire)
	if err := ssz.DecodeFromBytes(data, w); err != nil {
		return nil, err
	}

	d, err := pointFromWire(w.D)
	if err != nil {
		return nil, err
	}
	ipaProof, err := ipaProofFromWire(&w.IPAProof)
	if err != nil {
		return nil, err
	}

	p := &VerkleProof{
		DepthExtensionPresent: w.DepthExtensionPresent,
		D:                     d,
		IPAProof:              ipaProof,
	}
	p.Keys = make([][]byte, len(w.Keys))
	for i, k := range w.Keys {
		p.Keys[i] = append([]byte(nil), k[:]...)
	}
	p.Values = make([][]byte, len(w.Values))
	for i, v := range w.Values {
		p.Values[i] = append([]byte(nil), v[:]...)
	}
	p.OtherStems = make([][]byte, len(w.OtherStems))
	for i, s := range w.OtherStems {
		p.OtherStems[i] = append([]byte(nil), s[:]...)
	}
	p.CommitmentsByPath = make([]crypto.Point, len(w.CommitmentsByPath))
	for i, raw := range w.CommitmentsByPath {
		pt, err := pointFromWire(raw)
		if err != nil {
			return nil, err
		}
		p.CommitmentsByPath[i] = pt
	}
	return p, nil
}
