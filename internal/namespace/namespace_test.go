package namespace

import (
	"testing"

	"filestore/internal/account"
	"filestore/internal/ferrors"
)

func newTestEngine() *Engine {
	acct := account.New("acct-1", 1_000_000, account.RoleUser)
	return New("acct-1", nil, acct)
}

func TestCreateFolderConflict(t *testing.T) {
	e := newTestEngine()
	if _, err := e.CreateFolder(0, "docs"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := e.CreateFolder(0, "docs"); !ferrors.Is(err, ferrors.ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
}

func TestCreateFolderPath(t *testing.T) {
	e := newTestEngine()
	root, err := e.CreateFolder(0, "docs")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if root.Path != "/docs" {
		t.Fatalf("Path = %q, want /docs", root.Path)
	}
	child, err := e.CreateFolder(root.ID, "sub")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if child.Path != "/docs/sub" {
		t.Fatalf("Path = %q, want /docs/sub", child.Path)
	}
	if len(child.PathSegments) != 2 || child.PathSegments[0].Name != "docs" || child.PathSegments[1].Name != "sub" {
		t.Fatalf("unexpected PathSegments: %+v", child.PathSegments)
	}
}

func TestRenameFolderRewritesDescendants(t *testing.T) {
	e := newTestEngine()
	docs, _ := e.CreateFolder(0, "docs")
	sub, _ := e.CreateFolder(docs.ID, "sub")
	file, err := e.CreateFile(sub.ID, "a", "txt", 5, "file-aaaa.txt", false)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	if _, err := e.RenameFolder(docs.ID, "documents"); err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}

	listing, err := e.ListContents(sub.ID, false)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(listing.Files) != 1 {
		t.Fatalf("expected 1 file under sub, got %d", len(listing.Files))
	}
	if listing.Files[0].Path != "/documents/sub/a.txt" {
		t.Fatalf("file path not rewritten: got %q", listing.Files[0].Path)
	}
	if listing.Files[0].ID != file.ID {
		t.Fatalf("unexpected file id in listing")
	}

	subListing, err := e.ListContents(docs.ID, false)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(subListing.Folders) != 1 || subListing.Folders[0].Path != "/documents/sub" {
		t.Fatalf("sub folder path not rewritten: %+v", subListing.Folders)
	}
}

func TestMoveFolderCycleDetected(t *testing.T) {
	e := newTestEngine()
	a, _ := e.CreateFolder(0, "a")
	b, _ := e.CreateFolder(a.ID, "b")

	if _, err := e.MoveFolder(a.ID, b.ID); !ferrors.Is(err, ferrors.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
	if _, err := e.MoveFolder(a.ID, a.ID); !ferrors.Is(err, ferrors.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected for self-move, got %v", err)
	}
}

func TestMoveFolderNameConflict(t *testing.T) {
	e := newTestEngine()
	a, _ := e.CreateFolder(0, "a")
	b, _ := e.CreateFolder(0, "b")
	if _, err := e.CreateFolder(b.ID, "a"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := e.MoveFolder(a.ID, b.ID); !ferrors.Is(err, ferrors.ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
}

func TestSoftDeleteExcludesFromUniqueness(t *testing.T) {
	e := newTestEngine()
	docs, _ := e.CreateFolder(0, "docs")
	if err := e.SoftDelete(docs.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := e.CreateFolder(0, "docs"); err != nil {
		t.Fatalf("expected a trashed sibling to not block name reuse, got: %v", err)
	}
}

func TestSoftDeletePropagatesToSubtree(t *testing.T) {
	e := newTestEngine()
	docs, _ := e.CreateFolder(0, "docs")
	sub, _ := e.CreateFolder(docs.ID, "sub")
	file, _ := e.CreateFile(sub.ID, "a", "txt", 5, "file-aaaa.txt", false)

	if err := e.SoftDelete(docs.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	listing, err := e.ListContents(0, true)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(listing.Folders) != 1 || listing.Folders[0].DeletedAt == nil {
		t.Fatalf("expected docs to show up deleted in includeDeleted listing")
	}

	subListing, err := e.ListContents(sub.ID, true)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(subListing.Files) != 1 || subListing.Files[0].ID != file.ID || subListing.Files[0].DeletedAt == nil {
		t.Fatalf("expected descendant file to be trashed too")
	}
}

func TestRestoreConflict(t *testing.T) {
	e := newTestEngine()
	docs, _ := e.CreateFolder(0, "docs")
	if err := e.SoftDelete(docs.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := e.CreateFolder(0, "docs"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if err := e.Restore(docs.ID); !ferrors.Is(err, ferrors.ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict restoring into a taken name, got %v", err)
	}
}

func TestPermanentDeleteRecursesAndReleasesQuota(t *testing.T) {
	acct := account.New("acct-1", 1000, account.RoleUser)
	commit, _, err := acct.Reserve(50)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	commit()
	e := New("acct-1", nil, acct)

	docs, _ := e.CreateFolder(0, "docs")
	file, _ := e.CreateFile(docs.ID, "a", "txt", 50, "file-aaaa.txt", false)

	if err := e.PermanentDelete(docs.ID); err != nil {
		t.Fatalf("PermanentDelete: %v", err)
	}

	if _, err := e.ListContents(0, true); err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	listing, err := e.ListContents(0, true)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(listing.Folders) != 0 {
		t.Fatalf("expected docs to be gone, got %+v", listing.Folders)
	}
	_ = file

	_, used := acct.Snapshot()
	if used != 0 {
		t.Fatalf("usedBytes = %d, want 0 after permanent delete", used)
	}
}

func TestEmptyTrash(t *testing.T) {
	e := newTestEngine()
	docs, _ := e.CreateFolder(0, "docs")
	_, _ = e.CreateFile(docs.ID, "a", "txt", 5, "file-aaaa.txt", false)
	other, _ := e.CreateFolder(0, "other")

	if err := e.SoftDelete(docs.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if err := e.EmptyTrash(); err != nil {
		t.Fatalf("EmptyTrash: %v", err)
	}

	listing, err := e.ListContents(0, true)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(listing.Folders) != 1 || listing.Folders[0].ID != other.ID {
		t.Fatalf("expected only the untouched folder to remain, got %+v", listing.Folders)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	e := newTestEngine()
	if _, err := e.CreateFolder(0, "Documents"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	results := e.Search("docu", SearchFilters{})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestMoveFileBetweenFolders(t *testing.T) {
	e := newTestEngine()
	a, _ := e.CreateFolder(0, "a")
	b, _ := e.CreateFolder(0, "b")
	file, err := e.CreateFile(a.ID, "x", "bin", 1, "file-x.bin", false)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	moved, err := e.MoveFile(file.ID, b.ID)
	if err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if moved.Path != "/b/x.bin" {
		t.Fatalf("Path = %q, want /b/x.bin", moved.Path)
	}
}
