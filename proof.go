package verkle

import (
	"github.com/claude-does-go/verkle/crypto"
	"github.com/claude-does-go/verkle/ipa"
)

// VerkleProof is the wire-level proof object from spec §3/§6: the keys and
// values it attests to, the commitments visited along every requested key's
// path, each key's extension status byte, the distinct other-stems a
// proof-of-absence referenced, and the batch IPA proof that ties it all
// together. Keys/Values are carried on the wire (spec §6's
// "‖ u32 num_keys ‖ keys: 32B* ‖ values: 32B*") precisely so that an
// arm's-length holder of a serialized proof knows what it purports to
// attest to, mirroring original_source/src/verkle_tree/bn256_verkle_tree.rs's
// VerkleProof<K, GA>{ keys: Vec<K>, values: Vec<[u8;32]>, .. }.
type VerkleProof struct {
	Keys                  [][]byte
	Values                [][]byte
	OtherStems            [][]byte
	DepthExtensionPresent []byte
	CommitmentsByPath     []crypto.Point
	D                     crypto.Point
	IPAProof              *ipa.Proof
}

// Create builds a VerkleProof attesting to the current values at keys,
// mirroring original_source/src/verkle_tree/bn256_verkle_tree.rs's
// VerkleProof::create: recompute the tree's commitment, fetch each key's
// current value (the Rust reference errors via
// `anyhow!("key {:?} is not found")` when a requested key has no value;
// mirrored here as ErrKeyNotFound), gather the deduplicated opening
// elements, and compress them into one multi-proof. It returns the proof
// alongside the CommitmentElements a caller passes to Verify (spec §3.1: the
// prover and verifier share the same flat claim set, the verifier just
// doesn't need the F vectors).
func Create(t *Tree, keys [][]byte) (*VerkleProof, *CommitmentElements, error) {
	if _, err := t.ComputeCommitment(); err != nil {
		return nil, nil, err
	}

	values := make([][]byte, len(keys))
	for i, key := range keys {
		v, err := t.Get(key)
		if err != nil {
			return nil, nil, err
		}
		if v == nil {
			return nil, nil, ErrKeyNotFound
		}
		values[i] = v
	}

	pe, err := t.GetCommitmentsAlongPath(keys)
	if err != nil {
		return nil, nil, err
	}

	ce := pe.Commitments
	claims := make([]ipa.OpeningClaim, len(ce.Cs))
	for i := range ce.Cs {
		claims[i] = ipa.OpeningClaim{C: ce.Cs[i], Z: ce.Zs[i], Y: ce.Ys[i], F: ce.Fs[i]}
	}

	mp, err := ipa.CreateMultiProof(GetConfig(), claims)
	if err != nil {
		return nil, nil, err
	}

	var otherStems [][]byte
	depthExt := make([]byte, len(pe.ExtraData))
	seenStem := make(map[string]bool)
	for i, extra := range pe.ExtraData {
		depthExt[i] = extra.Encoded()
		if extra.Status() == int(ExtStatusAbsentOther) && !seenStem[string(extra.PoaStem)] {
			seenStem[string(extra.PoaStem)] = true
			otherStems = append(otherStems, extra.PoaStem)
		}
	}

	proof := &VerkleProof{
		Keys:                  keys,
		Values:                values,
		OtherStems:            otherStems,
		DepthExtensionPresent: depthExt,
		CommitmentsByPath:     ce.Cs,
		D:                     mp.D,
		IPAProof:              mp.Ipa,
	}
	return proof, &ce, nil
}

// Verify checks a VerkleProof against the commitment elements it was built
// from (spec §3/§4.4 verifier): the multi-proof either holds for every
// (C, z, y) claim or it doesn't, there is no partial success.
//
// Verify takes zs/ys via elements rather than re-deriving them from
// proof.Keys/proof.Values, matching
// original_source/src/verkle_tree/bn256_verkle_tree.rs's own
// `check(&self, zs: &[usize], ys: &[Fr], ipa_conf: ...)` exactly: the
// reference's check() never touches self.keys/self.values either, since
// CommitmentsByPath is a cross-key-deduplicated list and which (z, y) belongs
// to which key's path is only recoverable by re-walking a live tree (what
// GetCommitmentsAlongPath does), not by replaying keys/values alone against
// the flat deduplicated wire fields. Keys/Values stay on VerkleProof for
// transport and for a caller to re-derive elements against its own tree
// (as Create does), not for Verify to reconstruct independently.
func Verify(proof *VerkleProof, elements *CommitmentElements) (bool, error) {
	if len(proof.CommitmentsByPath) != len(elements.Cs) {
		return false, ErrInvalidLength
	}
	for i := range proof.CommitmentsByPath {
		if !crypto.Equal(&proof.CommitmentsByPath[i], &elements.Cs[i]) {
			return false, ErrInvariantViolation
		}
	}

	mp := &ipa.MultiProof{D: proof.D, Ipa: proof.IPAProof}
	return ipa.CheckMultiProof(GetConfig(), elements.Cs, elements.Zs, elements.Ys, mp)
}
