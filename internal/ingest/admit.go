package ingest

import (
	"filestore/internal/account"
	"filestore/internal/config"
	"filestore/internal/ferrors"
	"filestore/internal/namespace"
)

// admit checks every batch-level limit before any folder or file row is
// created. No partial admit: the first violation rejects the whole
// batch. The quota check here is an early reject on a point-in-time
// snapshot; the authoritative, race-free check happens at commit time
// via account.Reserve.
func admit(cfg *config.Config, acct *account.Account, engine *namespace.Engine, parentID namespace.ID, plan *Plan) error {
	quotaBytes, usedBytes := acct.Snapshot()
	if usedBytes+plan.TotalSize > quotaBytes {
		return ferrors.NewOpError("ingest.Admit", "", ferrors.ErrQuotaExceeded)
	}
	if cfg.MaxSizePerUploadBatch > 0 && plan.TotalSize > cfg.MaxSizePerUploadBatch {
		return ferrors.NewOpError("ingest.Admit", "", ferrors.ErrBatchSizeExceeded)
	}
	if cfg.MaxFilesPerUploadBatch > 0 && len(plan.Files) > cfg.MaxFilesPerUploadBatch {
		return ferrors.NewOpError("ingest.Admit", "", ferrors.ErrBatchFileCountExceeded)
	}
	if cfg.MaxFilesPerFolder <= 0 {
		return nil
	}

	perFolder := make(map[string]int)
	for _, f := range plan.Files {
		perFolder[f.parentRelPath]++
	}
	for _, f := range plan.Folders {
		perFolder[f.parent]++
	}

	topLevelExisting := engine.ChildCount(parentID)
	if topLevelExisting+perFolder[""] > cfg.MaxFilesPerFolder {
		return ferrors.NewOpError("ingest.Admit", "", ferrors.ErrFolderFileCountExceeded)
	}
	// Sub-folder counts below only sum this batch's own planned files, not
	// any existing children of a sub-folder the archive reuses rather than
	// creates (see reserveFolders/FindFolder); an early-reject approximation,
	// not the authoritative check.
	for relPath, count := range perFolder {
		if relPath == "" {
			continue
		}
		if count > cfg.MaxFilesPerFolder {
			return ferrors.NewOpError("ingest.Admit", relPath, ferrors.ErrFolderFileCountExceeded)
		}
	}
	return nil
}
