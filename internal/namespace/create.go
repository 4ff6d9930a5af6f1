package namespace

import "filestore/internal/ferrors"

// CreateFolder inserts a new folder under parentID (zero means root).
// Fails with ErrNameConflict if a non-deleted sibling already has name.
func (e *Engine) CreateFolder(parentID ID, name string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.folderNameTaken(parentID, name, 0) {
		return Snapshot{}, ferrors.NewOpError("namespace.CreateFolder", name, ferrors.ErrNameConflict)
	}

	parentPath, parentSegs, err := e.parentPathAndSegments(parentID)
	if err != nil {
		return Snapshot{}, err
	}

	id := e.allocID()
	now := e.now()
	f := &Folder{
		envelope: envelope{
			ID:           id,
			OwnerID:      e.ownerID,
			Name:         name,
			Path:         joinPath(parentPath, name),
			PathSegments: append(append([]PathSegment(nil), parentSegs...), PathSegment{ID: id, Name: name}),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		ParentID: parentID,
	}
	e.folders[id] = f
	return snapshotFolder(f), nil
}

// CreateFile inserts a new file row under folderID (zero means root),
// referencing an already-written blob store frame by storageKey. Called
// by the ingest pipeline after BS.Put has succeeded; fails with
// ErrNameConflict if a non-deleted sibling already has name+extension.
func (e *Engine) CreateFile(folderID ID, name, extension string, size int64, storageKey string, hasPreview bool) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fileNameTaken(folderID, name, extension, 0) {
		return Snapshot{}, ferrors.NewOpError("namespace.CreateFile", name, ferrors.ErrNameConflict)
	}

	parentPath, parentSegs, err := e.parentPathAndSegments(folderID)
	if err != nil {
		return Snapshot{}, err
	}

	id := e.allocID()
	now := e.now()
	fullName := name
	if extension != "" {
		fullName = name + "." + extension
	}
	f := &File{
		envelope: envelope{
			ID:           id,
			OwnerID:      e.ownerID,
			Name:         name,
			Path:         joinPath(parentPath, fullName),
			PathSegments: append(append([]PathSegment(nil), parentSegs...), PathSegment{ID: id, Name: fullName}),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		FolderID:   folderID,
		Extension:  extension,
		Size:       size,
		StorageKey: storageKey,
		HasPreview: hasPreview,
	}
	e.files[id] = f
	return snapshotFile(f), nil
}

// DiscardFolder and DiscardFile remove a row from the index without
// touching the blob store or the account's usedBytes. They exist solely
// for ingest rollback, where the caller has already decided not to commit
// the quota delta and will delete any blob store frames itself.
func (e *Engine) DiscardFolder(id ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.folders, id)
}

func (e *Engine) DiscardFile(id ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.files, id)
}
