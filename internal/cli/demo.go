package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"filestore/internal/ingest"
	"filestore/internal/namespace"
)

// demoCmd exercises the create/upload/browse/rename/download/trash/restore
// lifecycle in one process, since no other subcommand combination
// can (the namespace engine does not persist across invocations — see
// the package doc comment in root.go). It is executable documentation,
// not a substitute for a real client.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through upload, browse, rename, and trash in one process",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		docs, err := svc.CreateFolder(flagAccount, 0, "docs")
		if err != nil {
			return fmt.Errorf("create docs: %w", err)
		}
		fmt.Fprintf(out, "created %s (id=%d)\n", docs.Path, docs.ID)

		report, err := svc.UploadBatch(cmd.Context(), flagAccount, docs.ID, []ingest.Item{
			{Name: "a", Extension: "txt", Data: []byte("hello")},
			{Name: "b", Extension: "txt", Data: []byte("hello")},
		}, ingest.NameConflict, nil)
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		var fileIDs []int64
		for _, f := range report.Files {
			fmt.Fprintf(out, "uploaded %s (%d bytes, key=%s)\n", f.Path, f.Size, f.StorageKey)
		}

		listing, err := svc.ListContents(flagAccount, docs.ID)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		for _, f := range listing.Files {
			fileIDs = append(fileIDs, int64(f.ID))
		}

		if _, err := svc.RenameFolder(flagAccount, docs.ID, "papers"); err != nil {
			return fmt.Errorf("rename: %w", err)
		}
		renamed, _ := svc.ListContents(flagAccount, 0)
		for _, f := range renamed.Folders {
			fmt.Fprintf(out, "renamed docs -> %s\n", f.Path)
		}

		if len(fileIDs) > 0 {
			firstID := fileIDs[0]
			data, err := svc.DownloadFile(flagAccount, namespace.ID(firstID))
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}
			fmt.Fprintf(out, "downloaded first file: %q\n", data)

			if err := svc.SoftDeleteFile(flagAccount, namespace.ID(firstID)); err != nil {
				return fmt.Errorf("soft delete: %w", err)
			}
			fmt.Fprintln(out, "soft-deleted first file")

			if err := svc.RestoreFile(flagAccount, namespace.ID(firstID)); err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			fmt.Fprintln(out, "restored first file")
		}

		fmt.Fprintln(out, "demo complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
