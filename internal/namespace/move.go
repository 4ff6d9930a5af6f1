package namespace

import (
	"strings"
	"time"

	"filestore/internal/ferrors"
)

func indexOfSegment(segs []PathSegment, id ID) int {
	for i, s := range segs {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// relocate is the shared implementation behind RenameFolder and
// MoveFolder: it updates the folder's own name/parent/path and then
// rewrites every descendant's Path and PathSegments in one pass, so no
// reader ever observes a half-rewritten subtree. newName == "" keeps the
// current name (the MoveFolder case).
func (e *Engine) relocate(id, newParentID ID, newName string) (Snapshot, error) {
	folder, err := e.folderByID(id)
	if err != nil {
		return Snapshot{}, err
	}
	if folder.isDeleted() {
		return Snapshot{}, ferrors.NewOpError("namespace.relocate", "", ferrors.ErrNotFound)
	}

	if newParentID != folder.ParentID {
		if newParentID == id || e.wouldCreateCycle(id, newParentID) {
			return Snapshot{}, ferrors.NewOpError("namespace.relocate", "", ferrors.ErrCycleDetected)
		}
	}

	name := newName
	if name == "" {
		name = folder.Name
	}
	if e.folderNameTaken(newParentID, name, id) {
		return Snapshot{}, ferrors.NewOpError("namespace.relocate", name, ferrors.ErrNameConflict)
	}

	parentPath, parentSegs, err := e.parentPathAndSegments(newParentID)
	if err != nil {
		return Snapshot{}, err
	}

	oldPath := folder.Path
	newPath := joinPath(parentPath, name)
	newSegs := append(append([]PathSegment(nil), parentSegs...), PathSegment{ID: id, Name: name})

	now := e.now()
	folder.Name = name
	folder.ParentID = newParentID
	folder.Path = newPath
	folder.PathSegments = newSegs
	folder.UpdatedAt = now

	if oldPath != newPath {
		e.rewriteDescendants(id, oldPath, newPath, newSegs, now)
	}

	return snapshotFolder(folder), nil
}

// rewriteDescendants updates Path/PathSegments on every folder and file
// whose path chain passes through id, replacing the oldPath prefix with
// newPath and splicing newSegs in for the portion of the chain at and
// above id. Must be called while holding the write lock.
func (e *Engine) rewriteDescendants(id ID, oldPath, newPath string, newSegs []PathSegment, now time.Time) {
	prefix := oldPath + "/"
	for _, f := range e.folders {
		if f.ID == id || !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		idx := indexOfSegment(f.PathSegments, id)
		if idx < 0 {
			continue
		}
		f.Path = newPath + strings.TrimPrefix(f.Path, oldPath)
		f.PathSegments = append(append([]PathSegment(nil), newSegs...), f.PathSegments[idx+1:]...)
		f.UpdatedAt = now
	}
	for _, file := range e.files {
		if !strings.HasPrefix(file.Path, prefix) {
			continue
		}
		idx := indexOfSegment(file.PathSegments, id)
		if idx < 0 {
			continue
		}
		file.Path = newPath + strings.TrimPrefix(file.Path, oldPath)
		file.PathSegments = append(append([]PathSegment(nil), newSegs...), file.PathSegments[idx+1:]...)
		file.UpdatedAt = now
	}
}

// RenameFolder renames a folder in place, rewriting every descendant's
// path atomically. Fails with ErrNameConflict against an active sibling.
func (e *Engine) RenameFolder(id ID, newName string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	folder, err := e.folderByID(id)
	if err != nil {
		return Snapshot{}, err
	}
	return e.relocate(id, folder.ParentID, newName)
}

// MoveFolder reparents a folder, rewriting every descendant's path
// atomically. Fails with ErrCycleDetected if newParentID is id itself or
// a descendant of id, and ErrNameConflict against an active sibling under
// the new parent.
func (e *Engine) MoveFolder(id, newParentID ID) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.relocate(id, newParentID, "")
}

// RenameFile renames a file in place (no recursion: files have no
// children).
func (e *Engine) RenameFile(id ID, newName string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	file, err := e.fileByID(id)
	if err != nil {
		return Snapshot{}, err
	}
	if file.isDeleted() {
		return Snapshot{}, ferrors.NewOpError("namespace.RenameFile", "", ferrors.ErrNotFound)
	}
	if e.fileNameTaken(file.FolderID, newName, file.Extension, id) {
		return Snapshot{}, ferrors.NewOpError("namespace.RenameFile", newName, ferrors.ErrNameConflict)
	}

	parentPath, parentSegs, err := e.parentPathAndSegments(file.FolderID)
	if err != nil {
		return Snapshot{}, err
	}

	fullName := newName
	if file.Extension != "" {
		fullName = newName + "." + file.Extension
	}

	file.Name = newName
	file.Path = joinPath(parentPath, fullName)
	file.PathSegments = append(append([]PathSegment(nil), parentSegs...), PathSegment{ID: id, Name: fullName})
	file.UpdatedAt = e.now()
	return snapshotFile(file), nil
}

// MoveFile reparents a file under newFolderID.
func (e *Engine) MoveFile(id, newFolderID ID) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	file, err := e.fileByID(id)
	if err != nil {
		return Snapshot{}, err
	}
	if file.isDeleted() {
		return Snapshot{}, ferrors.NewOpError("namespace.MoveFile", "", ferrors.ErrNotFound)
	}
	if e.fileNameTaken(newFolderID, file.Name, file.Extension, id) {
		return Snapshot{}, ferrors.NewOpError("namespace.MoveFile", file.Name, ferrors.ErrNameConflict)
	}

	parentPath, parentSegs, err := e.parentPathAndSegments(newFolderID)
	if err != nil {
		return Snapshot{}, err
	}

	fullName := file.Name
	if file.Extension != "" {
		fullName = file.Name + "." + file.Extension
	}

	file.FolderID = newFolderID
	file.Path = joinPath(parentPath, fullName)
	file.PathSegments = append(append([]PathSegment(nil), parentSegs...), PathSegment{ID: id, Name: fullName})
	file.UpdatedAt = e.now()
	return snapshotFile(file), nil
}
