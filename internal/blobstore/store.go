package blobstore

import (
	"os"

	"filestore/internal/codec"
	"filestore/internal/ferrors"
	"filestore/internal/flog"
)

// Store persists encrypted, compressed blobs under a shared root
// directory, scoped per account by a storage key.
type Store struct {
	root string
}

// New returns a Store rooted at dir. dir is created on first write if it
// does not yet exist.
func New(root string) *Store {
	return &Store{root: root}
}

// PutResult describes a completed write.
type PutResult struct {
	StorageKey string
	ByteSize   int64 // length of plaintext, not the on-disk frame length
	HasPreview bool
}

// Put encodes plaintext through pipeline and writes it under a freshly
// allocated storage key via temp-then-rename. originalName is used only to
// derive the storage key's informational extension and to decide preview
// eligibility; it is never persisted. A preview sidecar is attempted on a
// best-effort basis and never fails the write.
func (s *Store) Put(accountID, originalName string, plaintext []byte, pipeline *codec.Pipeline) (PutResult, error) {
	key, err := newStorageKey(originalName)
	if err != nil {
		return PutResult{}, ferrors.NewOpError("blobstore.Put", "", ferrors.ErrIoError)
	}

	frame := pipeline.Encode(plaintext)
	if err := WriteAtomic(blobPath(s.root, accountID, key), frame); err != nil {
		return PutResult{}, err
	}

	hasPreview := false
	if preview, ok := generatePreview(originalName, plaintext); ok {
		previewFrame := pipeline.Encode(preview)
		if err := WriteAtomic(previewPath(s.root, accountID, key), previewFrame); err == nil {
			hasPreview = true
		}
	}

	return PutResult{StorageKey: key, ByteSize: int64(len(plaintext)), HasPreview: hasPreview}, nil
}

// Get reads and decodes the frame stored under storageKey.
func (s *Store) Get(accountID, storageKey string, pipeline *codec.Pipeline) ([]byte, error) {
	frame, err := os.ReadFile(blobPath(s.root, accountID, storageKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NewOpError("blobstore.Get", storageKey, ferrors.ErrNotFound)
		}
		return nil, ferrors.NewOpError("blobstore.Get", storageKey, ferrors.ErrIoError)
	}
	plaintext, err := pipeline.Decode(frame)
	if err != nil {
		flog.Error("corrupt frame on read", flog.String("storageKey", storageKey), flog.Err(err))
		return nil, ferrors.NewOpError("blobstore.Get", storageKey, ferrors.ErrCorruptFrame)
	}
	return plaintext, nil
}

// Preview reads and decodes the preview sidecar for storageKey, if one
// exists. The second return value is false when no preview was ever
// generated; that is not an error.
func (s *Store) Preview(accountID, storageKey string, pipeline *codec.Pipeline) ([]byte, bool, error) {
	frame, err := os.ReadFile(previewPath(s.root, accountID, storageKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, ferrors.NewOpError("blobstore.Preview", storageKey, ferrors.ErrIoError)
	}
	plaintext, err := pipeline.Decode(frame)
	if err != nil {
		flog.Error("corrupt preview frame on read", flog.String("storageKey", storageKey), flog.Err(err))
		return nil, false, ferrors.NewOpError("blobstore.Preview", storageKey, ferrors.ErrCorruptFrame)
	}
	return plaintext, true, nil
}

// Delete removes the frame and, if present, its preview sidecar. Deleting
// a storage key that does not exist is not an error.
func (s *Store) Delete(accountID, storageKey string) error {
	if err := os.Remove(blobPath(s.root, accountID, storageKey)); err != nil && !os.IsNotExist(err) {
		return ferrors.NewOpError("blobstore.Delete", storageKey, ferrors.ErrIoError)
	}
	if err := os.Remove(previewPath(s.root, accountID, storageKey)); err != nil && !os.IsNotExist(err) {
		return ferrors.NewOpError("blobstore.Delete", storageKey, ferrors.ErrIoError)
	}
	return nil
}
