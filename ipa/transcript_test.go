package ipa

import (
	"testing"

	"github.com/claude-does-go/verkle/crypto"
)

func TestTranscriptDeterministic(t *testing.T) {
	t.Parallel()

	mk := func() crypto.Fr {
		tr := NewTranscript("test")
		one := crypto.FrFromUint64(1)
		tr.AppendScalar(&one)
		var p crypto.Point
		p.Set(&crypto.Generator)
		tr.AppendPoint(&p)
		return tr.ChallengeScalar()
	}

	a := mk()
	b := mk()
	if !a.Equal(&b) {
		t.Fatal("transcript challenge is not a pure function of its commits")
	}
}

func TestTranscriptChallengeNonConsuming(t *testing.T) {
	t.Parallel()

	tr := NewTranscript("test")
	one := crypto.FrFromUint64(1)
	tr.AppendScalar(&one)

	c1 := tr.ChallengeScalar()
	c2 := tr.ChallengeScalar()
	if !c1.Equal(&c2) {
		t.Fatal("ChallengeScalar must be non-consuming per spec §4.1")
	}
}

func TestTranscriptSensitiveToDomainTag(t *testing.T) {
	t.Parallel()

	one := crypto.FrFromUint64(1)

	tr1 := NewTranscript("multi_proof")
	tr1.AppendScalar(&one)
	c1 := tr1.ChallengeScalar()

	tr2 := NewTranscript("ipa")
	tr2.AppendScalar(&one)
	c2 := tr2.ChallengeScalar()

	if c1.Equal(&c2) {
		t.Fatal("different domain tags must yield different transcript states")
	}
}

func TestTranscriptAppendBytesChunking(t *testing.T) {
	t.Parallel()

	tr1 := NewTranscript("x")
	tr1.AppendBytes(make([]byte, 31))
	c1 := tr1.ChallengeScalar()

	tr2 := NewTranscript("x")
	tr2.AppendBytes(make([]byte, 62))
	c2 := tr2.ChallengeScalar()

	if c1.Equal(&c2) {
		t.Fatal("appending more chunks must change the transcript state")
	}
}
