package namespace

import (
	"fmt"

	"filestore/internal/ferrors"
)

// Get returns a detached Snapshot of id, whether it is a folder or a
// file. Used by callers (ingest's report building, service wiring) that
// only hold a generic ID and need the current denormalised path.
func (e *Engine) Get(id ID) (Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if f, ok := e.folders[id]; ok {
		return snapshotFolder(f), nil
	}
	if f, ok := e.files[id]; ok {
		return snapshotFile(f), nil
	}
	return Snapshot{}, ferrors.NewOpError("namespace.Get", "", ferrors.ErrNotFound)
}

// FindFolder returns the active folder named name directly under
// parentID, if one exists. Used by ingest's folder-reservation step to
// reuse an existing folder on duplicate name instead of erroring.
func (e *Engine) FindFolder(parentID ID, name string) (Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, f := range e.folders {
		if f.ParentID == parentID && f.Name == name && !f.isDeleted() {
			return snapshotFolder(f), true
		}
	}
	return Snapshot{}, false
}

// FindFile returns the active file named name+"."+extension directly
// under folderID, if one exists. Used by ingest's duplicate-name
// resolution for the "replace" policy.
func (e *Engine) FindFile(folderID ID, name, extension string) (Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, f := range e.files {
		if f.FolderID == folderID && f.Name == name && f.Extension == extension && !f.isDeleted() {
			return snapshotFile(f), true
		}
	}
	return Snapshot{}, false
}

// FreeFileName returns name itself if no active file under folderID takes
// it, otherwise the smallest-n variant "name (n)" (n from 1) that is free.
// The extension is not part of the returned string. Used by ingest's "keepBoth" duplicate policy.
func (e *Engine) FreeFileName(folderID ID, name, extension string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.fileNameTaken(folderID, name, extension, 0) {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !e.fileNameTaken(folderID, candidate, extension, 0) {
			return candidate
		}
	}
}

// ChildCount returns the number of active children (folders plus files)
// directly under parentID, used by ingest's per-folder file-count limit.
func (e *Engine) ChildCount(parentID ID) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, f := range e.folders {
		if f.ParentID == parentID && !f.isDeleted() {
			n++
		}
	}
	for _, f := range e.files {
		if f.FolderID == parentID && !f.isDeleted() {
			n++
		}
	}
	return n
}
