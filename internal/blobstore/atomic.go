package blobstore

import (
	"os"
	"path/filepath"

	"filestore/internal/ferrors"
)

// WriteAtomic writes data to a temp file in the same directory as finalPath
// and renames it into place, so a crash or error mid-write never leaves a
// partially-written file at finalPath. The temp file is removed on any
// failure.
func WriteAtomic(finalPath string, data []byte) (retErr error) {
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return ferrors.NewOpError("blobstore.WriteAtomic", finalPath, ferrors.ErrIoError)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return ferrors.NewOpError("blobstore.WriteAtomic", finalPath, ferrors.ErrIoError)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return ferrors.NewOpError("blobstore.WriteAtomic", finalPath, ferrors.ErrIoError)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return ferrors.NewOpError("blobstore.WriteAtomic", finalPath, ferrors.ErrIoError)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return ferrors.NewOpError("blobstore.WriteAtomic", finalPath, ferrors.ErrIoError)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return ferrors.NewOpError("blobstore.WriteAtomic", finalPath, ferrors.ErrIoError)
	}
	return nil
}
