package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"filestore/internal/namespace"
)

func parentID(v int64) namespace.ID { return namespace.ID(v) }

var mkdirParent int64

var mkdirCmd = &cobra.Command{
	Use:   "mkdir NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := svc.CreateFolder(flagAccount, parentID(mkdirParent), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created folder %d at %s\n", snap.ID, snap.Path)
		return nil
	},
}

var renameFolderCmd = &cobra.Command{
	Use:   "rename-folder ID NEWNAME",
	Short: "Rename a folder in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		snap, err := svc.RenameFolder(flagAccount, id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", snap.Path)
		return nil
	},
}

var mvFolderNewParent int64

var mvFolderCmd = &cobra.Command{
	Use:   "mv-folder ID",
	Short: "Move a folder under --new-parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		snap, err := svc.MoveFolder(flagAccount, id, parentID(mvFolderNewParent))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "moved to %s\n", snap.Path)
		return nil
	},
}

var rmFolderCmd = &cobra.Command{
	Use:   "rm-folder ID",
	Short: "Soft-delete a folder and its subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.SoftDeleteFolder(flagAccount, id)
	},
}

var restoreFolderCmd = &cobra.Command{
	Use:   "restore-folder ID",
	Short: "Restore a trashed folder and its subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.RestoreFolder(flagAccount, id)
	},
}

var purgeFolderCmd = &cobra.Command{
	Use:   "purge-folder ID",
	Short: "Permanently delete a folder and its subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.PermanentDeleteFolder(flagAccount, id)
	},
}

func init() {
	mkdirCmd.Flags().Int64Var(&mkdirParent, "parent", 0, "parent folder id (0 = account root)")
	mvFolderCmd.Flags().Int64Var(&mvFolderNewParent, "new-parent", 0, "destination parent folder id (0 = account root)")

	rootCmd.AddCommand(mkdirCmd, renameFolderCmd, mvFolderCmd, rmFolderCmd, restoreFolderCmd, purgeFolderCmd)
}

func parseID(s string) (namespace.ID, error) {
	var v int64
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return namespace.ID(v), nil
}
