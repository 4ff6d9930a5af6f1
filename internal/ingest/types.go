// Package ingest implements batch upload admission: planning a set of
// leaf files and archives into a folder/file tree, checking quota and
// batch limits as one all-or-nothing decision, then materialising the
// plan through the namespace engine and blob store with rollback on any
// failure after admission.
package ingest

import (
	"archive/zip"

	"filestore/internal/namespace"
)

// DuplicateAction selects how Stream resolves a name collision against an
// existing active file in the same target folder.
type DuplicateAction string

const (
	// NameConflict is the default: the colliding item fails with
	// ferrors.ErrNameConflict and the whole batch rolls back.
	NameConflict DuplicateAction = ""
	// Replace soft-deletes the prior file and reuses its name.
	Replace DuplicateAction = "replace"
	// KeepBoth appends " (n)" with the smallest n >= 1 that frees a name.
	KeepBoth DuplicateAction = "keepBoth"
)

// Item is one member of a batch: either a single leaf file or an archive
// whose internal structure is materialised as folders.
type Item struct {
	// Leaf file fields. Archive is nil for a leaf item.
	Name      string
	Extension string
	Data      []byte

	// Archive, when non-nil, is walked by Plan instead of treating this
	// Item as a leaf.
	Archive *zip.Reader
}

// Request is the input to Ingest: a target parent folder plus the items
// to admit as a single batch.
type Request struct {
	AccountID       string
	ParentID        namespace.ID
	Items           []Item
	DuplicateAction DuplicateAction
	// Reporter receives per-file progress callbacks during streaming. Nil
	// is equivalent to a no-op reporter.
	Reporter ProgressReporter
}

// plannedFolder is one folder-hierarchy entry produced by Plan, keyed by
// its archive-relative path so Reserve can resolve a planned file's
// parent.
type plannedFolder struct {
	relPath  string // e.g. "0/a/b": the item's index in the batch, then the path inside the archive
	parent   string // relPath of the parent planned folder, "" for top level
	name     string
	depth    int
}

// plannedFile is one leaf entry produced by Plan.
type plannedFile struct {
	parentRelPath string // "" means Request.ParentID directly
	name          string
	extension     string
	data          []byte
}

// Plan is the output of the planning step: folders sorted parent-before-
// child, plus every leaf file to stream.
type Plan struct {
	Folders   []plannedFolder
	Files     []plannedFile
	TotalSize int64
}

// Result describes one item's outcome after a successful Ingest.
type Result struct {
	Kind       string // "file" or "folder"
	Name       string
	Path       string
	StorageKey string
	Size       int64
}

// Report is the full outcome of a successful Ingest call.
type Report struct {
	Files   []Result
	Folders []Result
}

// ProgressReporter receives incremental progress during a long Ingest
// call. Implementations must be safe to call from a single goroutine
// only; Ingest never calls it concurrently.
type ProgressReporter interface {
	OnProgress(done, total int)
}

// noopReporter discards progress callbacks.
type noopReporter struct{}

func (noopReporter) OnProgress(done, total int) {}
