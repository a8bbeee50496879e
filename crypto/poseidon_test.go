package crypto

import "testing"

// TestPoseidon2Deterministic pins the shape of seed scenario S6 (spec §8):
// Poseidon2 over two fixed P inputs must be a pure function of its inputs.
// The spec names a fixed golden constant for Poseidon2(to_P(1), to_P(2)) but
// does not give its value in the text; once this package's output for that
// exact call is observed once, it should be hardcoded here as the pinned
// vector. Until then this test asserts the determinism the golden vector
// property depends on.
func TestPoseidon2Deterministic(t *testing.T) {
	t.Parallel()

	a := PFromUint64(1)
	b := PFromUint64(2)

	got1 := Poseidon2(a, b)
	got2 := Poseidon2(a, b)

	if !got1.Equal(&got2) {
		t.Fatal("Poseidon2 is not deterministic for identical inputs")
	}

	zero := PFromUint64(0)
	if got1.Equal(&zero) {
		t.Fatal("Poseidon2(1,2) unexpectedly hashed to zero")
	}
}

func TestPoseidon2SensitiveToInputOrder(t *testing.T) {
	t.Parallel()

	a := PFromUint64(1)
	b := PFromUint64(2)

	ab := Poseidon2(a, b)
	ba := Poseidon2(b, a)

	if ab.Equal(&ba) {
		t.Fatal("Poseidon2 must not be symmetric in its two inputs")
	}
}

func TestPoseidon2MultiElementHash(t *testing.T) {
	t.Parallel()

	single := Poseidon2Hash(PFromUint64(7))
	pair := Poseidon2Hash(PFromUint64(7), PFromUint64(0))

	if single.Equal(&pair) {
		t.Fatal("hashing a trailing zero element should change the digest")
	}
}
