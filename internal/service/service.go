// Package service is the composition root: it owns the configuration,
// the codec pipeline's key material, the shared blob and avatar stores,
// and one namespace engine and account per account scope, exposing the
// RPC-shaped operation surface as plain Go methods. A single struct is
// threaded through every stage of an operation, owning the resources
// that stage needs and responsible for releasing them.
package service

import (
	"context"
	"sync"

	"filestore/internal/account"
	"filestore/internal/avatar"
	"filestore/internal/blobstore"
	"filestore/internal/codec"
	"filestore/internal/config"
	"filestore/internal/ferrors"
	"filestore/internal/ingest"
	"filestore/internal/namespace"
	"filestore/internal/secure"
)

// accountScope bundles the per-account state a request needs: its quota
// accounting and its namespace index.
type accountScope struct {
	account *account.Account
	engine  *namespace.Engine
}

// Service is the single entry point the transport layer (out of scope
// here) calls into. It is safe for concurrent use by multiple requests.
type Service struct {
	cfg     *config.Config
	blobs   *blobstore.Store
	codec   *codec.Pipeline
	ingest  *ingest.Pipeline
	avatars *avatar.Store

	mu       sync.Mutex
	accounts map[string]*accountScope
}

// New constructs a Service. key is the block cipher key shared by every
// account's codec pipeline; there is exactly one key for the whole
// deployment — a single-tenant-per-process storage core, with no
// per-account encryption keys. key is copied into the cipher's own
// round-key schedule before this call returns; the caller's slice is
// not retained.
func New(cfg *config.Config, key []byte) *Service {
	km := secure.NewKeyMaterial(key)
	blobs := blobstore.New(cfg.UploadsDir)
	pipeline := codec.New(km.Bytes())
	km.Close()

	return &Service{
		cfg:      cfg,
		blobs:    blobs,
		codec:    pipeline,
		ingest:   ingest.New(cfg, blobs, pipeline),
		avatars:  avatar.New(cfg.AvatarsDir, cfg.MaxAvatarSize),
		accounts: make(map[string]*accountScope),
	}
}

// Close zeros the shared codec pipeline's key material. Call once at
// process shutdown.
func (s *Service) Close() {
	s.codec.Close()
}

// scope returns the accountScope for accountID, creating one with a
// fresh, empty namespace and the configured default quota on first use.
func (s *Service) scope(accountID string) *accountScope {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.accounts[accountID]
	if ok {
		return sc
	}
	acct := account.New(accountID, s.cfg.DefaultQuotaBytes, account.RoleUser)
	sc = &accountScope{
		account: acct,
		engine:  namespace.New(accountID, s.blobs, acct),
	}
	s.accounts[accountID] = sc
	return sc
}

// UploadBatch admits a batch of files/archives under parentID.
// reporter may be nil.
func (s *Service) UploadBatch(ctx context.Context, accountID string, parentID namespace.ID, items []ingest.Item, duplicateAction ingest.DuplicateAction, reporter ingest.ProgressReporter) (ingest.Report, error) {
	sc := s.scope(accountID)
	return s.ingest.Ingest(ctx, sc.engine, sc.account, ingest.Request{
		AccountID:       accountID,
		ParentID:        parentID,
		Items:           items,
		DuplicateAction: duplicateAction,
		Reporter:        reporter,
	})
}

// ListContents lists the immediate children of parentID.
func (s *Service) ListContents(accountID string, parentID namespace.ID) (namespace.Listing, error) {
	return s.scope(accountID).engine.ListContents(parentID, false)
}

// ListTrash lists every soft-deleted item of the account.
func (s *Service) ListTrash(accountID string) []namespace.Snapshot {
	return s.scope(accountID).engine.ListTrash()
}

// ListPins lists pinned items, paginated.
func (s *Service) ListPins(accountID string, offset, limit int) []namespace.Snapshot {
	return s.scope(accountID).engine.ListPinned(offset, limit)
}

// ListRecent lists recently updated files.
func (s *Service) ListRecent(accountID string, limit int) []namespace.Snapshot {
	return s.scope(accountID).engine.ListRecentFiles(limit)
}

// Search performs a filtered name search.
func (s *Service) Search(accountID, query string, filters namespace.SearchFilters) []namespace.Snapshot {
	return s.scope(accountID).engine.Search(query, filters)
}

// CreateFolder creates a folder under parentID.
func (s *Service) CreateFolder(accountID string, parentID namespace.ID, name string) (namespace.Snapshot, error) {
	return s.scope(accountID).engine.CreateFolder(parentID, name)
}

// RenameFolder renames a folder in place.
func (s *Service) RenameFolder(accountID string, id namespace.ID, newName string) (namespace.Snapshot, error) {
	return s.scope(accountID).engine.RenameFolder(id, newName)
}

// MoveFolder moves a folder under a new parent.
func (s *Service) MoveFolder(accountID string, id, newParentID namespace.ID) (namespace.Snapshot, error) {
	return s.scope(accountID).engine.MoveFolder(id, newParentID)
}

// SoftDeleteFolder trashes a folder and its subtree.
func (s *Service) SoftDeleteFolder(accountID string, id namespace.ID) error {
	return s.scope(accountID).engine.SoftDelete(id)
}

// RestoreFolder restores a trashed folder and its subtree.
func (s *Service) RestoreFolder(accountID string, id namespace.ID) error {
	return s.scope(accountID).engine.Restore(id)
}

// PermanentDeleteFolder permanently deletes a folder and its subtree.
func (s *Service) PermanentDeleteFolder(accountID string, id namespace.ID) error {
	return s.scope(accountID).engine.PermanentDelete(id)
}

// EmptyTrash permanently deletes every trashed item of the account.
func (s *Service) EmptyTrash(accountID string) error {
	return s.scope(accountID).engine.EmptyTrash()
}

// RenameFile renames a file in place.
func (s *Service) RenameFile(accountID string, id namespace.ID, newName string) (namespace.Snapshot, error) {
	return s.scope(accountID).engine.RenameFile(id, newName)
}

// MoveFile moves a file into a new folder.
func (s *Service) MoveFile(accountID string, id, newFolderID namespace.ID) (namespace.Snapshot, error) {
	return s.scope(accountID).engine.MoveFile(id, newFolderID)
}

// SoftDeleteFile trashes a file.
func (s *Service) SoftDeleteFile(accountID string, id namespace.ID) error {
	return s.scope(accountID).engine.SoftDelete(id)
}

// RestoreFile restores a trashed file.
func (s *Service) RestoreFile(accountID string, id namespace.ID) error {
	return s.scope(accountID).engine.Restore(id)
}

// PermanentDeleteFile permanently deletes a file.
func (s *Service) PermanentDeleteFile(accountID string, id namespace.ID) error {
	return s.scope(accountID).engine.PermanentDelete(id)
}

// UpdateFileProperties currently covers the pinned flag; other
// properties have no mutable surface yet.
func (s *Service) UpdateFileProperties(accountID string, id namespace.ID, pinned bool) error {
	return s.scope(accountID).engine.SetPinned(id, pinned)
}

// ViewFile returns a file's plaintext, or its preview when
// wantPreview is true and a preview exists; it falls back to the full
// plaintext when no preview was generated.
func (s *Service) ViewFile(accountID string, id namespace.ID, wantPreview bool) ([]byte, error) {
	snap, err := s.scope(accountID).engine.Get(id)
	if err != nil {
		return nil, err
	}
	if snap.IsFolder {
		return nil, ferrors.NewOpError("service.ViewFile", "", ferrors.ErrInvalidArgument)
	}

	if wantPreview && snap.HasPreview {
		if data, ok, err := s.blobs.Preview(accountID, snap.StorageKey, s.codec); err == nil && ok {
			return data, nil
		}
	}
	return s.blobs.Get(accountID, snap.StorageKey, s.codec)
}

// DownloadFile always returns the full plaintext, never a preview.
func (s *Service) DownloadFile(accountID string, id namespace.ID) ([]byte, error) {
	snap, err := s.scope(accountID).engine.Get(id)
	if err != nil {
		return nil, err
	}
	if snap.IsFolder {
		return nil, ferrors.NewOpError("service.DownloadFile", "", ferrors.ErrInvalidArgument)
	}
	return s.blobs.Get(accountID, snap.StorageKey, s.codec)
}

// PutAvatar stores accountID's profile picture.
func (s *Service) PutAvatar(accountID, ext string, data []byte) error {
	return s.avatars.Put(accountID, ext, data)
}

// GetAvatar retrieves accountID's profile picture, if any.
func (s *Service) GetAvatar(accountID string) (data []byte, ext string, ok bool, err error) {
	return s.avatars.Get(accountID)
}
