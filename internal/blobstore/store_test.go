package blobstore

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"filestore/internal/codec"
	"filestore/internal/ferrors"
)

func newTestStore(t *testing.T) (*Store, *codec.Pipeline) {
	t.Helper()
	dir := t.TempDir()
	pipeline := codec.New([]byte("test account key"))
	t.Cleanup(pipeline.Close)
	return New(dir), pipeline
}

func TestPutGetRoundTrip(t *testing.T) {
	store, pipeline := newTestStore(t)

	plaintext := []byte("hello blob store")
	res, err := store.Put("acct-1", "notes.txt", plaintext, pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if res.ByteSize != int64(len(plaintext)) {
		t.Fatalf("ByteSize = %d, want %d", res.ByteSize, len(plaintext))
	}
	if !res.HasPreview {
		t.Fatal("expected a text preview to be generated for .txt")
	}

	got, err := store.Get("acct-1", res.StorageKey, pipeline)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("Get mismatch: got %q want %q", got, plaintext)
	}

	preview, ok, err := store.Preview("acct-1", res.StorageKey, pipeline)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !ok {
		t.Fatal("expected preview to be present")
	}
	if !bytes.Equal(preview, plaintext) {
		t.Fatal("text preview should equal original for small files")
	}
}

func TestStorageKeyOpaque(t *testing.T) {
	store, pipeline := newTestStore(t)

	res1, err := store.Put("acct-1", "secret.bin", []byte("data"), pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	res2, err := store.Put("acct-1", "secret.bin", []byte("data"), pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if res1.StorageKey == res2.StorageKey {
		t.Fatal("two puts of identical content should yield unrelated storage keys")
	}
	if filepath.Ext(res1.StorageKey) != ".bin" {
		t.Fatalf("expected storage key to carry the .bin extension hint, got %q", res1.StorageKey)
	}
}

func TestGetNotFound(t *testing.T) {
	store, pipeline := newTestStore(t)

	_, err := store.Get("acct-1", "file-doesnotexist.bin", pipeline)
	if !ferrors.Is(err, ferrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCorruptFrame(t *testing.T) {
	store, pipeline := newTestStore(t)

	res, err := store.Put("acct-1", "file.bin", []byte("some bytes"), pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := blobPath(store.root, "acct-1", res.StorageKey)
	if err := os.WriteFile(path, []byte("not even block aligned"), 0o600); err != nil {
		t.Fatalf("corrupt blob: %v", err)
	}

	_, err = store.Get("acct-1", res.StorageKey, pipeline)
	if !ferrors.Is(err, ferrors.ErrCorruptFrame) && !ferrors.Is(err, ferrors.ErrInvalidLength) {
		t.Fatalf("expected a decode failure, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, pipeline := newTestStore(t)

	res, err := store.Put("acct-1", "file.bin", []byte("data"), pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete("acct-1", res.StorageKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("acct-1", res.StorageKey); err != nil {
		t.Fatalf("second Delete should be a no-op, got: %v", err)
	}

	_, err = store.Get("acct-1", res.StorageKey, pipeline)
	if !ferrors.Is(err, ferrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUnsupportedExtensionNoPreview(t *testing.T) {
	store, pipeline := newTestStore(t)

	res, err := store.Put("acct-1", "archive.tar.gz", []byte("binary blob"), pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if res.HasPreview {
		t.Fatal("did not expect a preview for an unsupported extension")
	}

	_, ok, err := store.Preview("acct-1", res.StorageKey, pipeline)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if ok {
		t.Fatal("expected no preview sidecar to exist")
	}
}

func TestImagePreviewDownscales(t *testing.T) {
	store, pipeline := newTestStore(t)

	img := image.NewRGBA(image.Rect(0, 0, 800, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 800; x++ {
			img.Set(x, y, color.RGBA{R: byte(x % 256), G: byte(y % 256), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode source png: %v", err)
	}

	res, err := store.Put("acct-1", "photo.png", buf.Bytes(), pipeline)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !res.HasPreview {
		t.Fatal("expected an image preview to be generated")
	}

	preview, ok, err := store.Preview("acct-1", res.StorageKey, pipeline)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !ok {
		t.Fatal("expected preview to be present")
	}
	decoded, _, err := image.Decode(bytes.NewReader(preview))
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() > previewMaxDimension || b.Dy() > previewMaxDimension {
		t.Fatalf("preview not downscaled: %dx%d", b.Dx(), b.Dy())
	}
}
