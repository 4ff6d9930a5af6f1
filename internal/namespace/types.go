// Package namespace implements the logical file tree: a hierarchical set
// of folders and files with parent-scoped unique naming, denormalised
// paths, soft-delete/restore/permanent-delete, and atomic bulk path
// rewrites under rename or move.
//
// Records live in an arena keyed by a stable integer ID rather than a
// graph of owning pointers — parentage is stored as a parentID field and
// resolved by map lookup, per the source material's own design notes on
// replacing cyclic parent/child references.
package namespace

import "time"

// ID is a stable, arena-scoped identifier. Zero is never a valid ID.
type ID int64

// PathSegment is one {id, name} pair in a denormalised path chain from
// the namespace root to a given item.
type PathSegment struct {
	ID   ID
	Name string
}

// envelope carries the fields shared by folders and files.
type envelope struct {
	ID           ID
	OwnerID      string
	Name         string
	Path         string
	PathSegments []PathSegment
	Pinned       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

func (e *envelope) isDeleted() bool { return e.DeletedAt != nil }

// Folder is a namespace container. ParentID is zero for root-level
// folders.
type Folder struct {
	envelope
	ParentID ID
}

// File is a leaf item referencing a blob store frame by storageKey.
// FolderID is zero when the file lives at the account's root.
type File struct {
	envelope
	FolderID   ID
	Extension  string
	Size       int64
	StorageKey string
	HasPreview bool
}

// Snapshot is an exported, detached copy of a Folder or File safe to hand
// to callers outside the engine's lock.
type Snapshot struct {
	ID           ID
	OwnerID      string
	Name         string
	Path         string
	PathSegments []PathSegment
	Pinned       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	IsFolder bool

	// File-only fields, zero-valued for folders.
	FolderID   ID
	Extension  string
	Size       int64
	StorageKey string
	HasPreview bool

	// Folder-only field, zero-valued for files.
	ParentID ID
}

func snapshotFolder(f *Folder) Snapshot {
	return Snapshot{
		ID:           f.ID,
		OwnerID:      f.OwnerID,
		Name:         f.Name,
		Path:         f.Path,
		PathSegments: append([]PathSegment(nil), f.PathSegments...),
		Pinned:       f.Pinned,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
		DeletedAt:    f.DeletedAt,
		IsFolder:     true,
		ParentID:     f.ParentID,
	}
}

func snapshotFile(f *File) Snapshot {
	return Snapshot{
		ID:           f.ID,
		OwnerID:      f.OwnerID,
		Name:         f.Name,
		Path:         f.Path,
		PathSegments: append([]PathSegment(nil), f.PathSegments...),
		Pinned:       f.Pinned,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
		DeletedAt:    f.DeletedAt,
		IsFolder:     false,
		FolderID:     f.FolderID,
		Extension:    f.Extension,
		Size:         f.Size,
		StorageKey:   f.StorageKey,
		HasPreview:   f.HasPreview,
	}
}
