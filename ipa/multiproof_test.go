package ipa

import (
	"testing"

	"github.com/claude-does-go/verkle/crypto"
)

func makeClaim(cfg *Config, seed uint64, z int) OpeningClaim {
	f := randomVector(cfg.N(), seed)
	y := f[z]
	c, err := cfg.CommitLagrange(f)
	if err != nil {
		panic(err)
	}
	return OpeningClaim{C: c, Z: z, Y: y, F: f}
}

func TestMultiProofCompleteness(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	claims := []OpeningClaim{
		makeClaim(cfg, 10, 0),
		makeClaim(cfg, 20, 13),
		makeClaim(cfg, 30, 255),
	}

	proof, err := CreateMultiProof(cfg, claims)
	if err != nil {
		t.Fatalf("prove failed: %s", err)
	}

	cs := make([]crypto.Point, len(claims))
	zs := make([]int, len(claims))
	ys := make([]crypto.Fr, len(claims))
	for i, cl := range claims {
		cs[i], zs[i], ys[i] = cl.C, cl.Z, cl.Y
	}

	ok, err := CheckMultiProof(cfg, cs, zs, ys, proof)
	if err != nil {
		t.Fatalf("verify errored: %s", err)
	}
	if !ok {
		t.Fatal("valid multi-proof failed to verify")
	}
}

func TestMultiProofSoundnessFlippedValue(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	claims := []OpeningClaim{
		makeClaim(cfg, 40, 1),
		makeClaim(cfg, 50, 2),
	}
	proof, err := CreateMultiProof(cfg, claims)
	if err != nil {
		t.Fatalf("prove failed: %s", err)
	}

	cs := []crypto.Point{claims[0].C, claims[1].C}
	zs := []int{claims[0].Z, claims[1].Z}
	ys := []crypto.Fr{claims[0].Y, claims[1].Y}
	one := crypto.FrFromUint64(1)
	ys[0].Add(&ys[0], &one)

	ok, err := CheckMultiProof(cfg, cs, zs, ys, proof)
	if err != nil {
		t.Fatalf("verify errored: %s", err)
	}
	if ok {
		t.Fatal("multi-proof verified against a flipped value")
	}
}

func TestMultiProofSoundnessFlippedD(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	claims := []OpeningClaim{
		makeClaim(cfg, 60, 5),
	}
	proof, err := CreateMultiProof(cfg, claims)
	if err != nil {
		t.Fatalf("prove failed: %s", err)
	}

	var tampered crypto.Point
	tampered.Add(&proof.D, &crypto.Generator)
	proof.D = tampered

	cs := []crypto.Point{claims[0].C}
	zs := []int{claims[0].Z}
	ys := []crypto.Fr{claims[0].Y}

	ok, err := CheckMultiProof(cfg, cs, zs, ys, proof)
	if err != nil {
		t.Fatalf("verify errored: %s", err)
	}
	if ok {
		t.Fatal("multi-proof verified after D was tampered with")
	}
}

func TestBatchInverseMatchesIndividualInverse(t *testing.T) {
	t.Parallel()

	vals := randomVector(5, 99)
	inverses := BatchInverse(vals)
	for i := range vals {
		var want crypto.Fr
		want.Inverse(&vals[i])
		if !inverses[i].Equal(&want) {
			t.Fatalf("batch inverse[%d] mismatch", i)
		}
	}
}
