package ingest

import (
	"context"

	"filestore/internal/account"
	"filestore/internal/blobstore"
	"filestore/internal/codec"
	"filestore/internal/config"
	"filestore/internal/flog"
	"filestore/internal/namespace"
)

// Pipeline ties the namespace engine, blob store, and account quota of a
// single account scope into the batch-admission algorithm: Plan, Admit,
// Reserve folders, Stream files, Commit, Rollback, exactly the staged
// pipeline-with-rollback shape the encrypt workflow this project started
// from used for its own multi-file operation.
type Pipeline struct {
	cfg      *config.Config
	blobs    *blobstore.Store
	pipeline *codec.Pipeline
	locks    *createLocks
}

// New constructs a Pipeline. cfg supplies batch limits, blobs and
// pipeline are shared across every account's ingests, locks is shared
// across every Ingest call on the same Pipeline so per-parent create
// locks are actually exclusive account-wide.
func New(cfg *config.Config, blobs *blobstore.Store, pipeline *codec.Pipeline) *Pipeline {
	return &Pipeline{cfg: cfg, blobs: blobs, pipeline: pipeline, locks: newCreateLocks()}
}

// Ingest runs the full batch-admission algorithm against one account's
// namespace engine. On any failure after folder reservation begins, every
// row and blob frame created during this call is rolled back and
// usedBytes is left untouched; on success, usedBytes is incremented by
// exactly the total plaintext bytes of the files actually inserted.
func (p *Pipeline) Ingest(ctx context.Context, engine *namespace.Engine, acct *account.Account, req Request) (Report, error) {
	unlock := p.locks.lock(req.AccountID, req.ParentID)
	defer unlock()

	plan, err := buildPlan(req.Items)
	if err != nil {
		return Report{}, err
	}

	if err := admit(p.cfg, acct, engine, req.ParentID, plan); err != nil {
		return Report{}, err
	}

	resolved, createdFolders, err := reserveFolders(engine, req.ParentID, plan)
	if err != nil {
		flog.Warn("ingest rolled back during folder reservation", flog.String("account", req.AccountID), flog.Err(err))
		rollbackFolders(engine, createdFolders)
		return Report{}, err
	}

	reporter := req.Reporter
	if reporter == nil {
		reporter = noopReporter{}
	}
	frames, createdFiles, replacedFiles, totalCommitted, err := streamFiles(
		ctx, p.blobs, p.pipeline, engine, req.AccountID, req.ParentID,
		resolved, plan, req.DuplicateAction, reporter,
	)
	if err != nil {
		flog.Warn("ingest rolled back during streaming", flog.String("account", req.AccountID), flog.Err(err))
		rollbackFiles(p.blobs, engine, req.AccountID, frames, createdFiles, replacedFiles)
		rollbackFolders(engine, createdFolders)
		return Report{}, err
	}

	commit, _, err := acct.Reserve(totalCommitted)
	if err != nil {
		flog.Warn("ingest rolled back on quota check", flog.String("account", req.AccountID), flog.Err(err))
		rollbackFiles(p.blobs, engine, req.AccountID, frames, createdFiles, replacedFiles)
		rollbackFolders(engine, createdFolders)
		return Report{}, err
	}
	commit()

	return buildReport(engine, createdFolders, createdFiles), nil
}

// rollbackFiles deletes every blob store frame and namespace row created
// during a batch that failed after streaming began, and restores any
// prior file a Replace duplicate action soft-deleted, so a failed batch
// never leaves durable state mutated. Discarding the new rows first
// frees the name replacedFiles needs back.
func rollbackFiles(blobs *blobstore.Store, engine *namespace.Engine, accountID string, frames []writtenFrame, fileIDs, replacedFiles []namespace.ID) {
	for _, f := range frames {
		_ = blobs.Delete(accountID, f.storageKey)
	}
	for _, id := range fileIDs {
		engine.DiscardFile(id)
	}
	for _, id := range replacedFiles {
		if err := engine.Restore(id); err != nil {
			flog.Error("ingest rollback could not restore replaced file", flog.String("account", accountID), flog.Err(err))
		}
	}
}

// rollbackFolders removes every namespace row created during folder
// reservation in a batch that failed before or during streaming. Folders
// reused via FindFolder are never in this list and are left untouched.
func rollbackFolders(engine *namespace.Engine, folderIDs []namespace.ID) {
	for i := len(folderIDs) - 1; i >= 0; i-- {
		engine.DiscardFolder(folderIDs[i])
	}
}

func buildReport(engine *namespace.Engine, folderIDs, fileIDs []namespace.ID) Report {
	var report Report
	for _, id := range folderIDs {
		if snap, err := engine.Get(id); err == nil {
			report.Folders = append(report.Folders, Result{Kind: "folder", Name: snap.Name, Path: snap.Path})
		}
	}
	for _, id := range fileIDs {
		if snap, err := engine.Get(id); err == nil {
			report.Files = append(report.Files, Result{
				Kind: "file", Name: snap.Name, Path: snap.Path,
				StorageKey: snap.StorageKey, Size: snap.Size,
			})
		}
	}
	return report
}
