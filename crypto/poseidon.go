package crypto

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// Poseidon2Hash runs gnark-crypto's Merkle-Damgard Poseidon2 sponge over a
// sequence of P elements and returns the digest reduced back into P. This is
// the two-input "Poseidon2(s, e)" primitive spec §4.1 calls for when given
// exactly two elements; it generalizes to any number of absorbed elements so
// the same sponge backs commit_bytes' 31-byte chunking too.
func Poseidon2Hash(elements ...PElement) PElement {
	hasher := poseidon2.NewMerkleDamgardHasher()
	for _, e := range elements {
		b := e.Bytes()
		hasher.Write(b[:])
	}
	sum := hasher.Sum(nil)
	var out PElement
	out.SetBytes(sum)
	return out
}

// Poseidon2 is the normative two-input sponge step used by the transcript:
// s <- Poseidon2(s, e).
func Poseidon2(state, e PElement) PElement {
	return Poseidon2Hash(state, e)
}

// PFromUint64 lifts a small integer into P, used for S6-style golden vectors
// and for small constants such as HashToFr's initial zero state.
func PFromUint64(v uint64) PElement {
	var p PElement
	p.SetUint64(v)
	return p
}

// FrFromUint64 lifts a small integer into F.
func FrFromUint64(v uint64) Fr {
	var f Fr
	f.SetUint64(v)
	return f
}

// PFromLEBytes reads up to 32 little-endian bytes into a P element.
func PFromLEBytes(data []byte) PElement {
	var aligned [32]byte
	copy(aligned[:], data)
	var be [32]byte
	for i, b := range aligned {
		be[31-i] = b
	}
	var p PElement
	p.SetBytes(be[:])
	return p
}

// HashToFr derives a single F-valued scalar from an arbitrary-length label by
// chunking it into 31-byte pieces and folding them through the Poseidon2
// sponge, same chunking scheme as the transcript's commit_bytes. Used to
// deterministically derive fixed, non-SRS constants (e.g. the IPA's blinding
// base H) from a human-readable domain tag rather than depending on an
// external library's internal fields.
func HashToFr(label []byte) Fr {
	state := PFromUint64(0)
	for len(label) > 0 {
		chunkLen := 31
		if len(label) < chunkLen {
			chunkLen = len(label)
		}
		e := PFromLEBytes(label[:chunkLen])
		state = Poseidon2(state, e)
		label = label[chunkLen:]
	}
	return FrFromP(&state)
}
