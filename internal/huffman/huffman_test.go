package huffman

import (
	"bytes"
	"strings"
	"testing"

	"filestore/internal/ferrors"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again"),
		bytes.Repeat([]byte("ab"), 500),
		[]byte("x"),
		bytes.Repeat([]byte{0x41}, 300),
	}
	for _, pt := range cases {
		frame := Compress(pt)
		got, err := Decompress(frame)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, pt) {
			t.Fatalf("round trip mismatch for %q: got %q", pt, got)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	frame := Compress(nil)
	if len(frame) != 0 {
		t.Fatalf("expected empty frame for empty input, got %d bytes", len(frame))
	}
	got, err := Decompress(frame)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestHighEntropyPassThrough(t *testing.T) {
	// 256 distinct bytes in a 256-byte buffer: distinct/len = 1.0 > 0.8.
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	frame := Compress(buf)
	if !bytes.Equal(frame, buf) {
		t.Fatal("expected pass-through for high-entropy input")
	}
	got, err := Decompress(frame)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Fatal("pass-through round trip mismatch")
	}
}

func TestSingleByteRepeated(t *testing.T) {
	buf := bytes.Repeat([]byte{0x7a}, 1000)
	frame := Compress(buf)
	if len(frame) >= len(buf) {
		t.Fatalf("expected single-byte frame to shrink 1000 repeated bytes, got %d bytes", len(frame))
	}
	got, err := Decompress(frame)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Fatal("single-byte round trip mismatch")
	}
}

func TestTruncatedFrame(t *testing.T) {
	pt := []byte(strings.Repeat("abcdefgh", 50))
	frame := Compress(pt)
	if len(frame) < 10 {
		t.Fatal("expected a compressed frame long enough to truncate meaningfully")
	}
	truncated := frame[:len(frame)-2]

	_, err := Decompress(truncated)
	if !ferrors.Is(err, ferrors.ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestCompressionActuallyShrinksSkewedInput(t *testing.T) {
	// Heavily skewed frequency distribution should compress well below
	// the high-entropy guard and below the raw input size.
	var buf bytes.Buffer
	for i := 0; i < 1000; i++ {
		buf.WriteByte('a')
	}
	for i := 0; i < 10; i++ {
		buf.WriteByte(byte('b' + i))
	}
	pt := buf.Bytes()
	frame := Compress(pt)
	if len(frame) >= len(pt) {
		t.Fatalf("expected compression to shrink skewed input: frame %d, input %d", len(frame), len(pt))
	}
}
