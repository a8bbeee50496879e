package ipa

import (
	"testing"

	"github.com/claude-does-go/verkle/crypto"
)

func randomVector(n int, seed uint64) []crypto.Fr {
	out := make([]crypto.Fr, n)
	x := seed + 1
	for i := range out {
		// A cheap deterministic LCG is enough for test vectors; no
		// cryptographic randomness is needed here.
		x = x*6364136223846793005 + 1442695040888963407
		out[i] = crypto.FrFromUint64(x % 1_000_003)
	}
	return out
}

func TestIPAProveVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	a := randomVector(cfg.N(), 1)
	z := crypto.FrFromUint64(17)
	y := cfg.EvalAt(a, z)
	c, err := cfg.CommitLagrange(a)
	if err != nil {
		t.Fatalf("commit failed: %s", err)
	}

	proof, err := CreateIPAProof(NewTranscript("ipa"), cfg, a, z, y, c)
	if err != nil {
		t.Fatalf("prove failed: %s", err)
	}

	ok, err := CheckIPAProof(NewTranscript("ipa"), cfg, c, z, y, proof)
	if err != nil {
		t.Fatalf("verify errored: %s", err)
	}
	if !ok {
		t.Fatal("valid IPA proof failed to verify")
	}
}

func TestIPAVerifyRejectsWrongEvaluation(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	a := randomVector(cfg.N(), 2)
	z := crypto.FrFromUint64(3)
	y := cfg.EvalAt(a, z)
	c, err := cfg.CommitLagrange(a)
	if err != nil {
		t.Fatalf("commit failed: %s", err)
	}

	proof, err := CreateIPAProof(NewTranscript("ipa"), cfg, a, z, y, c)
	if err != nil {
		t.Fatalf("prove failed: %s", err)
	}

	wrongY := crypto.FrFromUint64(1)
	wrongY.Add(&wrongY, &y)
	ok, err := CheckIPAProof(NewTranscript("ipa"), cfg, c, z, wrongY, proof)
	if err != nil {
		t.Fatalf("verify errored: %s", err)
	}
	if ok {
		t.Fatal("proof verified against a flipped evaluation")
	}
}

func TestIPAVerifyRejectsWrongCommitment(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	a := randomVector(cfg.N(), 3)
	z := crypto.FrFromUint64(9)
	y := cfg.EvalAt(a, z)
	c, err := cfg.CommitLagrange(a)
	if err != nil {
		t.Fatalf("commit failed: %s", err)
	}

	proof, err := CreateIPAProof(NewTranscript("ipa"), cfg, a, z, y, c)
	if err != nil {
		t.Fatalf("prove failed: %s", err)
	}

	other := randomVector(cfg.N(), 4)
	wrongC, err := cfg.CommitLagrange(other)
	if err != nil {
		t.Fatalf("commit failed: %s", err)
	}

	ok, err := CheckIPAProof(NewTranscript("ipa"), cfg, wrongC, z, y, proof)
	if err != nil {
		t.Fatalf("verify errored: %s", err)
	}
	if ok {
		t.Fatal("proof verified against an unrelated commitment")
	}
}

func TestIPARejectsWrongLength(t *testing.T) {
	t.Parallel()

	cfg := GetConfig()
	short := make([]crypto.Fr, cfg.N()/2)
	z := crypto.FrFromUint64(1)
	y := crypto.FrFromUint64(0)
	var c crypto.Point

	if _, err := CreateIPAProof(NewTranscript("ipa"), cfg, short, z, y, c); err != ErrInvalidLength {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}
