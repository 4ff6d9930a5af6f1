package secure

import (
	"bytes"
	"testing"
)

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	Zero(data)

	for i, b := range data {
		if b != 0 {
			t.Errorf("Zero: byte %d = %d; want 0", i, b)
		}
	}
}

func TestZeroEmpty(t *testing.T) {
	// Should not panic on empty/nil slice
	Zero(nil)
	Zero([]byte{})
}

func TestZeroLarge(t *testing.T) {
	data := make([]byte, 1024*1024) // 1 MiB
	for i := range data {
		data[i] = byte(i % 256)
	}

	Zero(data)

	zeros := make([]byte, len(data))
	if !bytes.Equal(data, zeros) {
		t.Error("Zero did not zero all bytes in large buffer")
	}
}

func TestZeroAll(t *testing.T) {
	slice1 := []byte{1, 2, 3}
	slice2 := []byte{4, 5, 6, 7}
	slice3 := []byte{8, 9}

	ZeroAll(slice1, slice2, slice3)

	for _, s := range [][]byte{slice1, slice2, slice3} {
		for i, b := range s {
			if b != 0 {
				t.Errorf("byte %d = %d; want 0", i, b)
			}
		}
	}
}

func TestKeyMaterial(t *testing.T) {
	original := []byte{1, 2, 3, 4}
	km := NewKeyMaterial(original)

	if km.Len() != 4 {
		t.Fatalf("Len() = %d; want 4", km.Len())
	}
	if !bytes.Equal(km.Bytes(), original) {
		t.Fatalf("Bytes() = %v; want %v", km.Bytes(), original)
	}

	// Mutating the original must not affect the copy.
	original[0] = 0xff
	if km.Bytes()[0] == 0xff {
		t.Fatal("KeyMaterial shares storage with its input")
	}

	km.Close()
	if !km.IsClosed() {
		t.Fatal("IsClosed() = false after Close()")
	}
	if km.Bytes() != nil {
		t.Fatal("Bytes() should be nil after Close()")
	}
	if km.Len() != 0 {
		t.Fatal("Len() should be 0 after Close()")
	}

	// Close is idempotent.
	km.Close()
}

func TestNewKeyMaterialNil(t *testing.T) {
	km := NewKeyMaterial(nil)
	if km.Len() != 0 {
		t.Fatal("Len() should be 0 for nil input")
	}
}
