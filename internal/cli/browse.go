package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"filestore/internal/namespace"
)

var lsParent int64

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the immediate children of --parent",
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := svc.ListContents(flagAccount, parentID(lsParent))
		if err != nil {
			return err
		}
		for _, f := range listing.Folders {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6d d  %s\n", f.ID, f.Path)
		}
		for _, f := range listing.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6d f  %s (%d bytes)\n", f.ID, f.Path, f.Size)
		}
		return nil
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "List every soft-deleted item of the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSnapshots(cmd, svc.ListTrash(flagAccount))
		return nil
	},
}

var (
	pinsOffset int
	pinsLimit  int
)

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "List pinned items, paginated",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSnapshots(cmd, svc.ListPins(flagAccount, pinsOffset, pinsLimit))
		return nil
	},
}

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently updated files",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSnapshots(cmd, svc.ListRecent(flagAccount, recentLimit))
		return nil
	},
}

var (
	searchExt       string
	searchFolders   bool
	searchFilesOnly bool
	searchPinned    bool
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Case-insensitive substring search over item names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := namespace.SearchFilters{
			FoldersOnly: searchFolders,
			FilesOnly:   searchFilesOnly,
			Extension:   searchExt,
			PinnedOnly:  searchPinned,
		}
		printSnapshots(cmd, svc.Search(flagAccount, args[0], filters))
		return nil
	},
}

var emptyTrashCmd = &cobra.Command{
	Use:   "empty-trash",
	Short: "Permanently delete every trashed item of the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.EmptyTrash(flagAccount)
	},
}

func printSnapshots(cmd *cobra.Command, items []namespace.Snapshot) {
	for _, s := range items {
		kind := "f"
		if s.IsFolder {
			kind = "d"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-6d %s  %s\n", s.ID, kind, s.Path)
	}
}

func init() {
	lsCmd.Flags().Int64Var(&lsParent, "parent", 0, "parent folder id (0 = account root)")
	pinsCmd.Flags().IntVar(&pinsOffset, "offset", 0, "pagination offset")
	pinsCmd.Flags().IntVar(&pinsLimit, "limit", 50, "pagination limit")
	recentCmd.Flags().IntVar(&recentLimit, "limit", 50, "max results")

	searchCmd.Flags().StringVar(&searchExt, "ext", "", "filter by extension")
	searchCmd.Flags().BoolVar(&searchFolders, "folders-only", false, "match folders only")
	searchCmd.Flags().BoolVar(&searchFilesOnly, "files-only", false, "match files only")
	searchCmd.Flags().BoolVar(&searchPinned, "pinned", false, "match pinned items only")

	rootCmd.AddCommand(lsCmd, trashCmd, pinsCmd, recentCmd, searchCmd, emptyTrashCmd)
}
