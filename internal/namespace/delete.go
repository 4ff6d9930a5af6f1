package namespace

import (
	"strings"
	"time"

	"filestore/internal/ferrors"
)

// SoftDelete marks id (and, for a folder, its entire subtree) trashed.
// Trashed items are excluded from active-name uniqueness and active
// listings but remain addressable under trash listings.
func (e *Engine) SoftDelete(id ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if folder, ok := e.folders[id]; ok {
		e.softDeleteSubtree(folder, now)
		return nil
	}
	if file, ok := e.files[id]; ok {
		file.DeletedAt = &now
		file.UpdatedAt = now
		return nil
	}
	return ferrors.NewOpError("namespace.SoftDelete", "", ferrors.ErrNotFound)
}

func (e *Engine) softDeleteSubtree(folder *Folder, now time.Time) {
	folder.DeletedAt = &now
	folder.UpdatedAt = now

	prefix := folder.Path + "/"
	for _, f := range e.folders {
		if f.ID != folder.ID && strings.HasPrefix(f.Path, prefix) && indexOfSegment(f.PathSegments, folder.ID) >= 0 && !f.isDeleted() {
			f.DeletedAt = &now
			f.UpdatedAt = now
		}
	}
	for _, file := range e.files {
		if strings.HasPrefix(file.Path, prefix) && indexOfSegment(file.PathSegments, folder.ID) >= 0 && !file.isDeleted() {
			file.DeletedAt = &now
			file.UpdatedAt = now
		}
	}
}

// Restore clears deletedAt on id's subtree. Fails with ErrNameConflict if
// doing so would collide with a non-deleted sibling at the restored
// subtree's top level.
func (e *Engine) Restore(id ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if folder, ok := e.folders[id]; ok {
		if e.folderNameTaken(folder.ParentID, folder.Name, id) {
			return ferrors.NewOpError("namespace.Restore", folder.Name, ferrors.ErrNameConflict)
		}
		e.restoreSubtree(folder, now)
		return nil
	}
	if file, ok := e.files[id]; ok {
		if e.fileNameTaken(file.FolderID, file.Name, file.Extension, id) {
			return ferrors.NewOpError("namespace.Restore", file.Name, ferrors.ErrNameConflict)
		}
		file.DeletedAt = nil
		file.UpdatedAt = now
		return nil
	}
	return ferrors.NewOpError("namespace.Restore", "", ferrors.ErrNotFound)
}

func (e *Engine) restoreSubtree(folder *Folder, now time.Time) {
	folder.DeletedAt = nil
	folder.UpdatedAt = now

	prefix := folder.Path + "/"
	for _, f := range e.folders {
		if f.ID != folder.ID && strings.HasPrefix(f.Path, prefix) && indexOfSegment(f.PathSegments, folder.ID) >= 0 {
			f.DeletedAt = nil
			f.UpdatedAt = now
		}
	}
	for _, file := range e.files {
		if strings.HasPrefix(file.Path, prefix) && indexOfSegment(file.PathSegments, folder.ID) >= 0 {
			file.DeletedAt = nil
			file.UpdatedAt = now
		}
	}
}

// PermanentDelete removes id and its underlying blob store frame (if a
// file), decrementing the account's usedBytes. For a folder it recurses
// into every descendant first, then removes the folder itself.
func (e *Engine) PermanentDelete(id ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.permanentDelete(id)
}

func (e *Engine) permanentDelete(id ID) error {
	if folder, ok := e.folders[id]; ok {
		prefix := folder.Path + "/"
		var childFolders []ID
		var childFiles []ID
		for _, f := range e.folders {
			if f.ID != id && strings.HasPrefix(f.Path, prefix) && indexOfSegment(f.PathSegments, id) >= 0 {
				childFolders = append(childFolders, f.ID)
			}
		}
		for _, f := range e.files {
			if strings.HasPrefix(f.Path, prefix) && indexOfSegment(f.PathSegments, id) >= 0 {
				childFiles = append(childFiles, f.ID)
			}
		}
		for _, fid := range childFiles {
			if err := e.permanentDeleteFile(fid); err != nil {
				return err
			}
		}
		for _, fid := range childFolders {
			delete(e.folders, fid)
		}
		delete(e.folders, id)
		return nil
	}
	if _, ok := e.files[id]; ok {
		return e.permanentDeleteFile(id)
	}
	return ferrors.NewOpError("namespace.PermanentDelete", "", ferrors.ErrNotFound)
}

func (e *Engine) permanentDeleteFile(id ID) error {
	file := e.files[id]
	if e.blobs != nil {
		if err := e.blobs.Delete(e.ownerID, file.StorageKey); err != nil {
			return err
		}
	}
	if e.account != nil {
		e.account.Release(file.Size)
	}
	delete(e.files, id)
	return nil
}

// EmptyTrash permanently deletes every soft-deleted item of the account.
func (e *Engine) EmptyTrash() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var topLevelTrashedFolders []ID
	for _, f := range e.folders {
		if f.isDeleted() && !e.hasDeletedAncestor(f.ParentID) {
			topLevelTrashedFolders = append(topLevelTrashedFolders, f.ID)
		}
	}
	var topLevelTrashedFiles []ID
	for _, f := range e.files {
		if f.isDeleted() && !e.hasDeletedAncestor(f.FolderID) {
			topLevelTrashedFiles = append(topLevelTrashedFiles, f.ID)
		}
	}

	for _, id := range topLevelTrashedFiles {
		if err := e.permanentDeleteFile(id); err != nil {
			return err
		}
	}
	for _, id := range topLevelTrashedFolders {
		if err := e.permanentDelete(id); err != nil {
			return err
		}
	}
	return nil
}

// hasDeletedAncestor reports whether any ancestor folder of parentID is
// itself trashed, used so EmptyTrash only starts recursive deletes from
// the top of each trashed subtree rather than re-deleting descendants
// already covered by an ancestor's recursion.
func (e *Engine) hasDeletedAncestor(parentID ID) bool {
	for parentID != 0 {
		f, ok := e.folders[parentID]
		if !ok {
			return false
		}
		if f.isDeleted() {
			return true
		}
		parentID = f.ParentID
	}
	return false
}
