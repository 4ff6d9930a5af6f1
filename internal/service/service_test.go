package service

import (
	"context"
	"testing"

	"filestore/internal/config"
	"filestore/internal/ingest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{
		MaxFilesPerFolder:      1000,
		MaxFilesPerUploadBatch: 1000,
		MaxSizePerUploadBatch:  1 << 20,
		DefaultQuotaBytes:      1 << 20,
		UploadsDir:             t.TempDir(),
		AvatarsDir:             t.TempDir(),
		MaxAvatarSize:          1 << 20,
	}
	svc := New(cfg, []byte("0123456789abcdef"))
	t.Cleanup(svc.Close)
	return svc
}

func TestUploadAndViewFile(t *testing.T) {
	svc := newTestService(t)
	report, err := svc.UploadBatch(context.Background(), "acct-1", 0, []ingest.Item{
		{Name: "note", Extension: "txt", Data: []byte("hello there")},
	}, ingest.NameConflict, nil)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(report.Files))
	}

	listing, err := svc.ListContents("acct-1", 0)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(listing.Files) != 1 {
		t.Fatalf("expected 1 file in listing, got %d", len(listing.Files))
	}

	data, err := svc.DownloadFile("acct-1", listing.Files[0].ID)
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	if string(data) != "hello there" {
		t.Fatalf("DownloadFile = %q, want %q", data, "hello there")
	}
}

func TestPinAndListPins(t *testing.T) {
	svc := newTestService(t)
	folder, err := svc.CreateFolder("acct-1", 0, "docs")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if err := svc.UpdateFileProperties("acct-1", folder.ID, true); err != nil {
		t.Fatalf("UpdateFileProperties: %v", err)
	}

	pins := svc.ListPins("acct-1", 0, 10)
	if len(pins) != 1 || pins[0].ID != folder.ID {
		t.Fatalf("expected folder to be pinned, got %+v", pins)
	}
}

func TestEmptyTrashAcrossAccounts(t *testing.T) {
	svc := newTestService(t)
	folderA, _ := svc.CreateFolder("acct-a", 0, "docs")
	_, err := svc.CreateFolder("acct-b", 0, "docs")
	if err != nil {
		t.Fatalf("CreateFolder acct-b: %v", err)
	}

	if err := svc.SoftDeleteFolder("acct-a", folderA.ID); err != nil {
		t.Fatalf("SoftDeleteFolder: %v", err)
	}
	if err := svc.EmptyTrash("acct-a"); err != nil {
		t.Fatalf("EmptyTrash: %v", err)
	}

	listingB, err := svc.ListContents("acct-b", 0)
	if err != nil {
		t.Fatalf("ListContents acct-b: %v", err)
	}
	if len(listingB.Folders) != 1 {
		t.Fatalf("expected acct-b's folder to be untouched, got %d", len(listingB.Folders))
	}
}
