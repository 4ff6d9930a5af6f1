// Package blobstore owns the on-disk layout rooted at a per-account
// directory: opaque storage keys, atomic temp-then-rename writes, and
// best-effort preview sidecars alongside the encrypted frames they
// describe.
package blobstore

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"filestore/internal/util"
)

const storageKeyRandBytes = 16

// newStorageKey allocates a content-opaque identifier: 16 random bytes
// hex-encoded, suffixed with the lowercased original extension (kept only
// as a hint; never used for routing). Two identical plaintexts under two
// different accounts, or uploaded twice by the same account, yield
// unrelated keys.
func newStorageKey(originalName string) (string, error) {
	buf, err := util.RandomBytes(storageKeyRandBytes)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return "file-" + hex.EncodeToString(buf) + ext, nil
}

// accountBlobsDir returns the directory holding an account's blob frames.
func accountBlobsDir(root, accountID string) string {
	return filepath.Join(root, "accounts", accountID, "blobs")
}

// accountPreviewsDir returns the directory holding an account's preview
// sidecars.
func accountPreviewsDir(root, accountID string) string {
	return filepath.Join(root, "accounts", accountID, "previews")
}

func blobPath(root, accountID, storageKey string) string {
	return filepath.Join(accountBlobsDir(root, accountID), storageKey)
}

func previewPath(root, accountID, storageKey string) string {
	return filepath.Join(accountPreviewsDir(root, accountID), storageKey)
}
