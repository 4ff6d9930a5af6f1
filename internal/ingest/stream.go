package ingest

import (
	"context"

	"filestore/internal/blobstore"
	"filestore/internal/codec"
	"filestore/internal/ferrors"
	"filestore/internal/namespace"
)

// writtenFrame records a blob store frame written during this batch, so
// rollback can delete it if a later step fails.
type writtenFrame struct {
	storageKey string
}

// streamFiles writes each planned file through the blob store and
// inserts its namespace row, resolving name collisions per action. It
// stops at the first failure; the caller is responsible for rolling
// back everything recorded in frames/createdFiles/replacedFiles so far.
func streamFiles(
	ctx context.Context,
	blobs *blobstore.Store,
	pipeline *codec.Pipeline,
	engine *namespace.Engine,
	accountID string,
	rootParentID namespace.ID,
	resolved map[string]namespace.ID,
	plan *Plan,
	action DuplicateAction,
	reporter ProgressReporter,
) ([]writtenFrame, []namespace.ID, []namespace.ID, int64, error) {
	var frames []writtenFrame
	var createdFiles []namespace.ID
	var replacedFiles []namespace.ID
	var totalCommitted int64

	for i, pf := range plan.Files {
		if err := ctx.Err(); err != nil {
			return frames, createdFiles, replacedFiles, totalCommitted, ferrors.NewOpError("ingest.Stream", "", ferrors.ErrCancelled)
		}

		folderID := rootParentID
		if pf.parentRelPath != "" {
			if id, ok := resolved[pf.parentRelPath]; ok {
				folderID = id
			}
		}

		name := pf.name
		if existing, ok := engine.FindFile(folderID, pf.name, pf.extension); ok {
			switch action {
			case Replace:
				if err := engine.SoftDelete(existing.ID); err != nil {
					return frames, createdFiles, replacedFiles, totalCommitted, err
				}
				replacedFiles = append(replacedFiles, existing.ID)
			case KeepBoth:
				name = engine.FreeFileName(folderID, pf.name, pf.extension)
			default:
				return frames, createdFiles, replacedFiles, totalCommitted, ferrors.NewOpError("ingest.Stream", pf.name, ferrors.ErrNameConflict)
			}
		}

		originalName := name
		if pf.extension != "" {
			originalName = name + "." + pf.extension
		}

		put, err := blobs.Put(accountID, originalName, pf.data, pipeline)
		if err != nil {
			return frames, createdFiles, replacedFiles, totalCommitted, err
		}
		frames = append(frames, writtenFrame{storageKey: put.StorageKey})

		snap, err := engine.CreateFile(folderID, name, pf.extension, put.ByteSize, put.StorageKey, put.HasPreview)
		if err != nil {
			return frames, createdFiles, replacedFiles, totalCommitted, err
		}
		createdFiles = append(createdFiles, snap.ID)
		totalCommitted += put.ByteSize

		if reporter != nil {
			reporter.OnProgress(i+1, len(plan.Files))
		}
	}

	return frames, createdFiles, replacedFiles, totalCommitted, nil
}
