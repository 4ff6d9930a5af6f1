package namespace

import (
	"sort"
	"strings"
	"time"
)

// Listing is the result of ListContents: a parent's breadcrumb segments
// plus its immediate children.
type Listing struct {
	ParentPathSegments []PathSegment
	Folders            []Snapshot
	Files              []Snapshot
}

// ListContents returns the immediate children of parentID (zero means
// root), optionally including trashed items.
func (e *Engine) ListContents(parentID ID, includeDeleted bool) (Listing, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var parentSegs []PathSegment
	if parentID != 0 {
		parent, err := e.folderByID(parentID)
		if err != nil {
			return Listing{}, err
		}
		parentSegs = append([]PathSegment(nil), parent.PathSegments...)
	}

	var folders, files []Snapshot
	for _, f := range e.folders {
		if f.ParentID != parentID {
			continue
		}
		if f.isDeleted() && !includeDeleted {
			continue
		}
		folders = append(folders, snapshotFolder(f))
	}
	for _, f := range e.files {
		if f.FolderID != parentID {
			continue
		}
		if f.isDeleted() && !includeDeleted {
			continue
		}
		files = append(files, snapshotFile(f))
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return Listing{ParentPathSegments: parentSegs, Folders: folders, Files: files}, nil
}

// ListTrash returns every soft-deleted folder and file of the account,
// ordered by updatedAt descending, regardless of nesting.
func (e *Engine) ListTrash() []Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var all []Snapshot
	for _, f := range e.folders {
		if f.isDeleted() {
			all = append(all, snapshotFolder(f))
		}
	}
	for _, f := range e.files {
		if f.isDeleted() {
			all = append(all, snapshotFile(f))
		}
	}
	sortByUpdatedAtDesc(all)
	return all
}

// ListPinned returns pinned, non-deleted folders and files ordered by
// updatedAt descending, paginated by offset/limit.
func (e *Engine) ListPinned(offset, limit int) []Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var all []Snapshot
	for _, f := range e.folders {
		if f.Pinned && !f.isDeleted() {
			all = append(all, snapshotFolder(f))
		}
	}
	for _, f := range e.files {
		if f.Pinned && !f.isDeleted() {
			all = append(all, snapshotFile(f))
		}
	}
	sortByUpdatedAtDesc(all)
	return paginate(all, offset, limit)
}

// ListRecentFiles returns non-deleted files ordered by updatedAt
// descending, capped at limit entries.
func (e *Engine) ListRecentFiles(limit int) []Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var all []Snapshot
	for _, f := range e.files {
		if !f.isDeleted() {
			all = append(all, snapshotFile(f))
		}
	}
	sortByUpdatedAtDesc(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// SearchFilters narrows a Search call.
type SearchFilters struct {
	FoldersOnly   bool
	FilesOnly     bool
	Extension     string // matched case-insensitively against File.Extension
	PinnedOnly    bool
	CreatedAfter  time.Time
	CreatedBefore time.Time
}

// Search performs a case-insensitive substring match over name, narrowed
// by filters. Deleted items are always excluded.
func (e *Engine) Search(query string, filters SearchFilters) []Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	q := strings.ToLower(query)
	var results []Snapshot

	if !filters.FilesOnly {
		for _, f := range e.folders {
			if f.isDeleted() || !matchesSearch(f.Name, q, filters.PinnedOnly, f.Pinned, f.CreatedAt, filters) {
				continue
			}
			results = append(results, snapshotFolder(f))
		}
	}
	if !filters.FoldersOnly {
		for _, f := range e.files {
			if f.isDeleted() || !matchesSearch(f.Name, q, filters.PinnedOnly, f.Pinned, f.CreatedAt, filters) {
				continue
			}
			if filters.Extension != "" && !strings.EqualFold(f.Extension, filters.Extension) {
				continue
			}
			results = append(results, snapshotFile(f))
		}
	}

	sortByUpdatedAtDesc(results)
	return results
}

func matchesSearch(name, query string, pinnedOnly, isPinned bool, createdAt time.Time, filters SearchFilters) bool {
	if query != "" && !strings.Contains(strings.ToLower(name), query) {
		return false
	}
	if pinnedOnly && !isPinned {
		return false
	}
	if !filters.CreatedAfter.IsZero() && createdAt.Before(filters.CreatedAfter) {
		return false
	}
	if !filters.CreatedBefore.IsZero() && createdAt.After(filters.CreatedBefore) {
		return false
	}
	return true
}

func sortByUpdatedAtDesc(items []Snapshot) {
	sort.Slice(items, func(i, j int) bool { return items[i].UpdatedAt.After(items[j].UpdatedAt) })
}

func paginate(items []Snapshot, offset, limit int) []Snapshot {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
