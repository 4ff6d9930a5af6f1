package codec

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("hello, world"),
		bytes.Repeat([]byte("payload "), 200),
	}

	p := New([]byte("account key"))
	defer p.Close()

	for _, pt := range cases {
		stored := p.Encode(pt)
		if len(stored)%16 != 0 {
			t.Fatalf("encoded length %d is not block-aligned", len(stored))
		}
		got, err := p.Decode(stored)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !bytes.Equal(got, pt) {
			t.Fatalf("round trip mismatch: got %q want %q", got, pt)
		}
	}
}

func TestDifferentKeysProduceDifferentCiphertext(t *testing.T) {
	pt := []byte("the same plaintext encoded under two different account keys")

	a := New([]byte("key-a"))
	defer a.Close()
	b := New([]byte("key-b"))
	defer b.Close()

	if bytes.Equal(a.Encode(pt), b.Encode(pt)) {
		t.Fatal("expected different account keys to produce different ciphertext")
	}
}
