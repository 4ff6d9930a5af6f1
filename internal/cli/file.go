package cli

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"filestore/internal/ingest"
	"filestore/internal/util"
)

// progressReporter prints per-file upload progress to w: a percentage,
// a files-done/total count, and an ETA, scaled to "files done" rather
// than bytes transferred.
type progressReporter struct {
	w     io.Writer
	start time.Time
}

func (p *progressReporter) OnProgress(done, total int) {
	if p.w == nil {
		return
	}
	progress, _, eta := util.Statify(int64(done), int64(total), p.start)
	fmt.Fprintf(p.w, "\r%3.0f%% (%d/%d files) eta %s", progress*100, done, total, eta)
	if done == total {
		fmt.Fprintln(p.w)
	}
}

var (
	uploadParent   int64
	uploadDup      string
	uploadZip      bool
	uploadProgress bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload one or more local files as a batch",
	Long: `Upload admits each FILE as a leaf item in a single batch. Pass --zip to
instead treat a single FILE as a zip archive whose internal directory
structure is materialised as folders under --parent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dup, err := parseDuplicateAction(uploadDup)
		if err != nil {
			return err
		}

		var items []ingest.Item
		if uploadZip {
			if len(args) != 1 {
				return fmt.Errorf("--zip takes exactly one archive path")
			}
			zr, err := zip.OpenReader(args[0])
			if err != nil {
				return fmt.Errorf("opening archive: %w", err)
			}
			defer zr.Close()
			items = append(items, ingest.Item{Archive: &zr.Reader})
		} else {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				base := filepath.Base(path)
				name, ext := splitNameExt(base)
				items = append(items, ingest.Item{Name: name, Extension: ext, Data: data})
			}
		}

		var reporter ingest.ProgressReporter
		if uploadProgress {
			reporter = &progressReporter{w: cmd.ErrOrStderr(), start: time.Now()}
		}

		report, err := svc.UploadBatch(cmd.Context(), flagAccount, parentID(uploadParent), items, dup, reporter)
		if err != nil {
			return err
		}
		for _, f := range report.Folders {
			fmt.Fprintf(cmd.OutOrStdout(), "folder %s\n", f.Path)
		}
		for _, f := range report.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "file   %s (%s, key=%s)\n", f.Path, util.Sizeify(f.Size), f.StorageKey)
		}
		return nil
	},
}

func splitNameExt(base string) (name, ext string) {
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[:i], base[i+1:]
	}
	return base, ""
}

func parseDuplicateAction(s string) (ingest.DuplicateAction, error) {
	switch s {
	case "", "conflict":
		return ingest.NameConflict, nil
	case "replace":
		return ingest.Replace, nil
	case "keepboth":
		return ingest.KeepBoth, nil
	default:
		return "", fmt.Errorf("invalid --dup %q (want conflict, replace, or keepboth)", s)
	}
}

var (
	downloadOut     string
	downloadPreview bool
)

var downloadCmd = &cobra.Command{
	Use:   "download ID",
	Short: "Write a file's plaintext to --out (or stdout)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var data []byte
		if downloadPreview {
			data, err = svc.ViewFile(flagAccount, id, true)
		} else {
			data, err = svc.DownloadFile(flagAccount, id)
		}
		if err != nil {
			return err
		}
		if downloadOut == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(downloadOut, data, 0o644)
	},
}

var renameFileCmd = &cobra.Command{
	Use:   "rename-file ID NEWNAME",
	Short: "Rename a file in place (extension unchanged)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		snap, err := svc.RenameFile(flagAccount, id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", snap.Path)
		return nil
	},
}

var mvFileNewParent int64

var mvFileCmd = &cobra.Command{
	Use:   "mv-file ID",
	Short: "Move a file under --new-parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		snap, err := svc.MoveFile(flagAccount, id, parentID(mvFileNewParent))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "moved to %s\n", snap.Path)
		return nil
	},
}

var rmFileCmd = &cobra.Command{
	Use:   "rm-file ID",
	Short: "Soft-delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.SoftDeleteFile(flagAccount, id)
	},
}

var restoreFileCmd = &cobra.Command{
	Use:   "restore-file ID",
	Short: "Restore a trashed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.RestoreFile(flagAccount, id)
	},
}

var purgeFileCmd = &cobra.Command{
	Use:   "purge-file ID",
	Short: "Permanently delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.PermanentDeleteFile(flagAccount, id)
	},
}

var pinFileCmd = &cobra.Command{
	Use:   "pin ID true|false",
	Short: "Set a file's pinned flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.UpdateFileProperties(flagAccount, id, args[1] == "true")
	},
}

func init() {
	uploadCmd.Flags().Int64Var(&uploadParent, "parent", 0, "parent folder id (0 = account root)")
	uploadCmd.Flags().StringVar(&uploadDup, "dup", "conflict", "duplicate-name policy: conflict, replace, or keepboth")
	uploadCmd.Flags().BoolVar(&uploadZip, "zip", false, "treat the single FILE argument as a zip archive to materialise as folders")
	uploadCmd.Flags().BoolVar(&uploadProgress, "progress", false, "print a live files-done/eta progress line to stderr")

	downloadCmd.Flags().StringVar(&downloadOut, "out", "", "output path (default stdout)")
	downloadCmd.Flags().BoolVar(&downloadPreview, "preview", false, "fetch the preview sidecar instead of the full file")

	mvFileCmd.Flags().Int64Var(&mvFileNewParent, "new-parent", 0, "destination folder id (0 = account root)")

	rootCmd.AddCommand(uploadCmd, downloadCmd, renameFileCmd, mvFileCmd, rmFileCmd, restoreFileCmd, purgeFileCmd, pinFileCmd)
}
