package ipa

import (
	"github.com/claude-does-go/verkle/crypto"
)

// Proof is the IpaProof from spec §3/§6: log2(n) pairs of (L, R) points plus
// the final folded scalar.
type Proof struct {
	L []crypto.Point
	R []crypto.Point
	A crypto.Fr
}

// CreateIPAProof proves knowledge of a with C = <a,G> and y = <a,b>, where b
// is the public Lagrange basis vector at the opening point z (spec §4.3); y
// is bound into the argument through U = w*H, w a transcript challenge. The transcript must already carry whatever prior state the caller
// wants bound into the proof (e.g. a multi-proof's forked "ipa" transcript).
func CreateIPAProof(t *Transcript, cfg *Config, a []crypto.Fr, z crypto.Fr, y crypto.Fr, c crypto.Point) (*Proof, error) {
	n := cfg.N()
	if len(a) != n || n&(n-1) != 0 {
		return nil, ErrInvalidLength
	}
	b := cfg.LagrangeBasisAt(z)

	t.AppendPoint(&c)
	t.AppendScalar(&z)
	t.AppendScalar(&y)
	w := t.ChallengeScalar()
	var u crypto.Point
	u.ScalarMul(cfg.H(), &w)

	g := cfg.SRS()
	aCur := append([]crypto.Fr(nil), a...)
	bCur := append([]crypto.Fr(nil), b...)

	rounds := log2(n)
	ls := make([]crypto.Point, 0, rounds)
	rs := make([]crypto.Point, 0, rounds)

	for len(aCur) > 1 {
		half := len(aCur) / 2
		aL, aR := aCur[:half], aCur[half:]
		bL, bR := bCur[:half], bCur[half:]
		gL, gR := g[:half], g[half:]

		L := commitCross(aL, gR, bR, &u)
		R := commitCross(aR, gL, bL, &u)

		t.AppendPoint(&L)
		t.AppendPoint(&R)
		x := t.ChallengeScalar()
		var xInv crypto.Fr
		xInv.Inverse(&x)

		aCur = foldScalars(aL, aR, x)
		bCur = foldScalars(bL, bR, xInv)
		g = foldPoints(gL, gR, xInv)

		ls = append(ls, L)
		rs = append(rs, R)
	}

	return &Proof{L: ls, R: rs, A: aCur[0]}, nil
}

// CheckIPAProof verifies an IPA proof against the claim C = <a,G>,
// y = <a,b> = a(z), via the single folded identity
// a*·G* + a*·b*·U = C + y·U + Σ_k (x_k^-1·L_k + x_k·R_k).
func CheckIPAProof(t *Transcript, cfg *Config, c crypto.Point, z crypto.Fr, y crypto.Fr, proof *Proof) (bool, error) {
	n := cfg.N()
	if len(proof.L) != len(proof.R) || len(proof.L) != log2(n) {
		return false, ErrInvalidLength
	}
	b := cfg.LagrangeBasisAt(z)

	t.AppendPoint(&c)
	t.AppendScalar(&z)
	t.AppendScalar(&y)
	w := t.ChallengeScalar()
	var u crypto.Point
	u.ScalarMul(cfg.H(), &w)

	xs := make([]crypto.Fr, len(proof.L))
	for k := range proof.L {
		t.AppendPoint(&proof.L[k])
		t.AppendPoint(&proof.R[k])
		xs[k] = t.ChallengeScalar()
	}

	g := cfg.SRS()
	bCur := b
	for _, x := range xs {
		var xInv crypto.Fr
		xInv.Inverse(&x)
		half := len(g) / 2
		g = foldPoints(g[:half], g[half:], xInv)
		bCur = foldScalars(bCur[:half], bCur[half:], xInv)
	}
	gStar := g[0]
	bStar := bCur[0]

	var lhs crypto.Point
	lhs.ScalarMul(&gStar, &proof.A)
	var ab crypto.Fr
	ab.Mul(&proof.A, &bStar)
	var uTerm crypto.Point
	uTerm.ScalarMul(&u, &ab)
	lhs.Add(&lhs, &uTerm)

	// Each prover round maps P to P + x^-1*L + x*R, starting from
	// P = C + y*U.
	var yU crypto.Point
	yU.ScalarMul(&u, &y)
	var rhs crypto.Point
	rhs.Add(&c, &yU)
	for k, x := range xs {
		var xInv crypto.Fr
		xInv.Inverse(&x)
		var lTerm, rTerm crypto.Point
		lTerm.ScalarMul(&proof.L[k], &xInv)
		rTerm.ScalarMul(&proof.R[k], &x)
		rhs.Add(&rhs, &lTerm)
		rhs.Add(&rhs, &rTerm)
	}

	return lhs.Equal(&rhs), nil
}

// commitCross computes <aSide, gOther> + <aSide, bOther> * U, the shape
// shared by both the L and R round commitments (spec §4.3 step 3).
func commitCross(aSide []crypto.Fr, gOther []crypto.Point, bOther []crypto.Fr, u *crypto.Point) crypto.Point {
	var acc crypto.Point
	acc.SetIdentity()
	for i := range aSide {
		var term crypto.Point
		term.ScalarMul(&gOther[i], &aSide[i])
		acc.Add(&acc, &term)
	}
	ip := innerProduct(aSide, bOther)
	var ipTerm crypto.Point
	ipTerm.ScalarMul(u, &ip)
	acc.Add(&acc, &ipTerm)
	return acc
}

func innerProduct(a, b []crypto.Fr) crypto.Fr {
	var acc crypto.Fr
	for i := range a {
		var term crypto.Fr
		term.Mul(&a[i], &b[i])
		acc.Add(&acc, &term)
	}
	return acc
}

// foldScalars returns xs[i] + scalar*ys[i].
func foldScalars(xs, ys []crypto.Fr, scalar crypto.Fr) []crypto.Fr {
	out := make([]crypto.Fr, len(xs))
	for i := range xs {
		var term crypto.Fr
		term.Mul(&scalar, &ys[i])
		out[i].Add(&xs[i], &term)
	}
	return out
}

// foldPoints returns xs[i] + scalar*ys[i].
func foldPoints(xs, ys []crypto.Point, scalar crypto.Fr) []crypto.Point {
	out := make([]crypto.Point, len(xs))
	for i := range xs {
		var term crypto.Point
		term.ScalarMul(&ys[i], &scalar)
		out[i].Add(&xs[i], &term)
	}
	return out
}

func log2(n int) int {
	k := 0
	for (1 << k) < n {
		k++
	}
	return k
}
