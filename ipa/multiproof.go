package ipa

import (
	"github.com/claude-does-go/verkle/crypto"
)

// MultiProof is the batch proof from spec §3/§6: the quotient commitment D
// plus the single IPA opening that finishes the protocol.
type MultiProof struct {
	D   crypto.Point
	Ipa *Proof
}

// OpeningClaim is one (C_i, z_i, y_i) triple from spec §4.4, carrying the
// full evaluation vector f_i only the prover needs.
type OpeningClaim struct {
	C crypto.Point
	Z int
	Y crypto.Fr
	F []crypto.Fr // evaluations of the committed polynomial over the domain
}

// CreateMultiProof compresses m claims {(C_i, z_i, y_i)} into one IPA proof
// (spec §4.4 prover).
func CreateMultiProof(cfg *Config, claims []OpeningClaim) (*MultiProof, error) {
	n := cfg.N()
	for _, cl := range claims {
		if len(cl.F) != n {
			return nil, ErrInvalidLength
		}
	}

	tr := NewTranscript("multi_proof")
	for _, cl := range claims {
		tr.AppendPoint(&cl.C)
		z := crypto.FrFromUint64(uint64(cl.Z))
		tr.AppendScalar(&z)
		tr.AppendScalar(&cl.Y)
	}
	r := tr.ChallengeScalar()
	rPowers := powers(r, len(claims))

	g := make([]crypto.Fr, n)
	for i, cl := range claims {
		q := cfg.QuotientInDomain(cl.F, cl.Z, cl.Y)
		addScaledInto(g, q, rPowers[i])
	}
	d, err := cfg.CommitLagrange(g)
	if err != nil {
		return nil, err
	}

	tr.AppendPoint(&d)
	t := tr.ChallengeScalar()

	weights := make([]crypto.Fr, len(claims))
	for i, cl := range claims {
		var denom crypto.Fr
		denom.Sub(&t, &cfg.domain[cl.Z])
		weights[i] = denom
	}
	weights = BatchInverse(weights)
	for i := range weights {
		weights[i].Mul(&weights[i], &rPowers[i])
	}

	var valE crypto.Fr
	for i, cl := range claims {
		var term crypto.Fr
		term.Mul(&weights[i], &cl.Y)
		valE.Add(&valE, &term)
	}

	combined := make([]crypto.Fr, n)
	for i, cl := range claims {
		addScaledInto(combined, cl.F, weights[i])
	}
	for k := range combined {
		combined[k].Sub(&combined[k], &g[k])
	}
	commE, err := cfg.CommitLagrange(combined)
	if err != nil {
		return nil, err
	}

	ipaTr := NewTranscript("ipa")
	ipaTr.AppendScalar(&t)
	ipaTr.AppendScalar(&valE)
	proof, err := CreateIPAProof(ipaTr, cfg, combined, t, valE, commE)
	if err != nil {
		return nil, err
	}

	return &MultiProof{D: d, Ipa: proof}, nil
}

// CheckMultiProof verifies a batch proof against the public claims
// {(C_i, z_i, y_i)} (spec §4.4 verifier). It never needs the f_i vectors.
func CheckMultiProof(cfg *Config, cs []crypto.Point, zs []int, ys []crypto.Fr, proof *MultiProof) (bool, error) {
	if len(cs) != len(zs) || len(cs) != len(ys) {
		return false, ErrInvalidLength
	}

	tr := NewTranscript("multi_proof")
	for i := range cs {
		tr.AppendPoint(&cs[i])
		z := crypto.FrFromUint64(uint64(zs[i]))
		tr.AppendScalar(&z)
		tr.AppendScalar(&ys[i])
	}
	r := tr.ChallengeScalar()
	rPowers := powers(r, len(cs))

	tr.AppendPoint(&proof.D)
	t := tr.ChallengeScalar()

	denoms := make([]crypto.Fr, len(cs))
	for i, z := range zs {
		var denom crypto.Fr
		denom.Sub(&t, &cfg.domain[z])
		denoms[i] = denom
	}
	weights := BatchInverse(denoms)
	for i := range weights {
		weights[i].Mul(&weights[i], &rPowers[i])
	}

	var valE crypto.Fr
	for i := range cs {
		var term crypto.Fr
		term.Mul(&weights[i], &ys[i])
		valE.Add(&valE, &term)
	}

	var commE crypto.Point
	commE.SetIdentity()
	for i := range cs {
		var term crypto.Point
		term.ScalarMul(&cs[i], &weights[i])
		commE.Add(&commE, &term)
	}
	commE.Sub(&commE, &proof.D)

	ipaTr := NewTranscript("ipa")
	ipaTr.AppendScalar(&t)
	ipaTr.AppendScalar(&valE)
	return CheckIPAProof(ipaTr, cfg, commE, t, valE, proof.Ipa)
}

func powers(r crypto.Fr, m int) []crypto.Fr {
	out := make([]crypto.Fr, m)
	if m == 0 {
		return out
	}
	out[0] = crypto.FrFromUint64(1)
	for i := 1; i < m; i++ {
		out[i].Mul(&out[i-1], &r)
	}
	return out
}

// addScaledInto adds scalar*src into dst element-wise: dst[k] += scalar*src[k].
func addScaledInto(dst, src []crypto.Fr, scalar crypto.Fr) {
	for k := range dst {
		var term crypto.Fr
		term.Mul(&scalar, &src[k])
		dst[k].Add(&dst[k], &term)
	}
}

// BatchInverse inverts a slice of field elements with a single Fr.Inverse
// call via the Montgomery trick (spec §4.4: "Domain-point inversions ...
// must be batched").
func BatchInverse(vals []crypto.Fr) []crypto.Fr {
	n := len(vals)
	if n == 0 {
		return nil
	}
	prefix := make([]crypto.Fr, n)
	acc := crypto.FrFromUint64(1)
	for i, v := range vals {
		prefix[i] = acc
		acc.Mul(&acc, &v)
	}
	var accInv crypto.Fr
	accInv.Inverse(&acc)

	out := make([]crypto.Fr, n)
	for i := n - 1; i >= 0; i-- {
		out[i].Mul(&prefix[i], &accInv)
		accInv.Mul(&accInv, &vals[i])
	}
	return out
}
