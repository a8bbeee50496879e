package verkle

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/claude-does-go/verkle/crypto"
)

func TestLeafToCommsMarksPresence(t *testing.T) {
	t.Parallel()

	var vs [2]crypto.Fr
	if err := leafToComms(vs[:], bytes.Repeat([]byte{0}, 32)); err != nil {
		t.Fatalf("leafToComms: %s", err)
	}
	// A stored all-zero value's lo half must differ from an absent slot's Go
	// zero value, since the presence marker 2^128 was added.
	var absent crypto.Fr
	if vs[0].Equal(&absent) {
		t.Fatal("stored zero value must not equal the absent-slot zero")
	}
}

func TestLeafToCommsRejectsOversizeValue(t *testing.T) {
	t.Parallel()

	var vs [2]crypto.Fr
	if err := leafToComms(vs[:], make([]byte, 33)); err != ErrInvalidLength {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

// TestInsertGetRoundTrip is a property test (spec §8 property 1): any value
// written through Insert is readable back unchanged via Get.
func TestInsertGetRoundTrip(t *testing.T) {
	t.Parallel()

	f := func(keyByte, valueByte byte, suffix byte) bool {
		tr := New()
		key := make([]byte, KeySize)
		key[0] = keyByte
		key[StemSize] = suffix
		value := bytes.Repeat([]byte{valueByte}, 32)

		if err := tr.Insert(key, value); err != nil {
			return false
		}
		got, err := tr.Get(key)
		return err == nil && bytes.Equal(got, value)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// TestCommitmentOrderIndependence is spec §8 property 2: inserting the same
// key/value pairs in a different order yields the same root commitment.
func TestCommitmentOrderIndependence(t *testing.T) {
	t.Parallel()

	type kv struct{ key, value []byte }
	entries := []kv{
		{key32(func(k *[32]byte) { k[0] = 1 }), key32(func(k *[32]byte) { k[0] = 11 })},
		{key32(func(k *[32]byte) { k[0] = 1; k[5] = 9 }), key32(func(k *[32]byte) { k[0] = 22 })},
		{key32(func(k *[32]byte) { k[0] = 200 }), key32(func(k *[32]byte) { k[0] = 33 })},
	}

	forward := New()
	for _, e := range entries {
		if err := forward.Insert(e.key, e.value); err != nil {
			t.Fatalf("insert: %s", err)
		}
	}
	c1, err := forward.ComputeCommitment()
	if err != nil {
		t.Fatalf("compute commitment: %s", err)
	}

	backward := New()
	for i := len(entries) - 1; i >= 0; i-- {
		if err := backward.Insert(entries[i].key, entries[i].value); err != nil {
			t.Fatalf("insert: %s", err)
		}
	}
	c2, err := backward.ComputeCommitment()
	if err != nil {
		t.Fatalf("compute commitment: %s", err)
	}

	if !crypto.Equal(&c1, &c2) {
		t.Fatal("commitment depends on insertion order")
	}
}
