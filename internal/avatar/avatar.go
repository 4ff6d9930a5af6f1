// Package avatar stores user profile pictures. Avatars are public-facing
// assets, not secrets, so they bypass the codec pipeline entirely and
// are written plain, reusing the blob store's atomic temp-then-rename
// helper rather than duplicating it.
package avatar

import (
	"os"
	"path/filepath"
	"strings"

	"filestore/internal/blobstore"
	"filestore/internal/ferrors"
)

// Store persists avatar files under a shared root directory, one file
// per account at a fixed name so a new upload always replaces the prior
// avatar.
type Store struct {
	root    string
	maxSize int64
}

// New returns a Store rooted at dir, rejecting any write over maxSize
// bytes.
func New(dir string, maxSize int64) *Store {
	return &Store{root: dir, maxSize: maxSize}
}

func (s *Store) path(accountID, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return filepath.Join(s.root, "user-"+accountID+"."+ext)
}

// Put writes data as accountID's avatar, replacing any prior avatar
// (including one stored under a different extension, since the file
// extension may change between uploads).
func (s *Store) Put(accountID, ext string, data []byte) error {
	if int64(len(data)) > s.maxSize {
		return ferrors.NewOpError("avatar.Put", accountID, ferrors.ErrInvalidArgument)
	}
	if err := s.removeExisting(accountID); err != nil {
		return err
	}
	return blobstore.WriteAtomic(s.path(accountID, ext), data)
}

// Get reads accountID's avatar bytes and its stored extension. ok is
// false, with no error, when the account has no avatar yet.
func (s *Store) Get(accountID string) (data []byte, ext string, ok bool, err error) {
	entries, globErr := filepath.Glob(filepath.Join(s.root, "user-"+accountID+".*"))
	if globErr != nil {
		return nil, "", false, ferrors.NewOpError("avatar.Get", accountID, ferrors.ErrIoError)
	}
	if len(entries) == 0 {
		return nil, "", false, nil
	}

	path := entries[0]
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", false, nil
		}
		return nil, "", false, ferrors.NewOpError("avatar.Get", accountID, ferrors.ErrIoError)
	}
	return data, strings.TrimPrefix(filepath.Ext(path), "."), true, nil
}

// Delete removes accountID's avatar, if any. Not an error if none exists.
func (s *Store) Delete(accountID string) error {
	return s.removeExisting(accountID)
}

func (s *Store) removeExisting(accountID string) error {
	entries, err := filepath.Glob(filepath.Join(s.root, "user-"+accountID+".*"))
	if err != nil {
		return ferrors.NewOpError("avatar.Delete", accountID, ferrors.ErrIoError)
	}
	for _, path := range entries {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return ferrors.NewOpError("avatar.Delete", accountID, ferrors.ErrIoError)
		}
	}
	return nil
}
