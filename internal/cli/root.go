// Package cli implements filestorectl, a maintenance front door over
// internal/service's operation surface. It is not the product's HTTP
// transport — it exists so the storage core's operations can be
// exercised and inspected from a terminal.
//
// Every invocation of filestorectl constructs a fresh Service with an
// empty in-memory namespace: the namespace engine keeps its index in
// memory, so nothing about folder/file metadata survives between
// process runs. Blob contents under UPLOADS_DIR do persist; only the
// logical tree does not. "demo" is the one subcommand that exercises
// the full create/upload/browse/trash lifecycle within a single process
// so the surface can be seen working end to end.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"filestore/internal/config"
	"filestore/internal/flog"
	"filestore/internal/service"
)

// Version is set by main.go.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "filestorectl",
	Short:   "Maintenance CLI for the encrypted file-storage core",
	Version: Version,
}

// Global flags shared by every subcommand.
var (
	flagAccount string
	flagKeyHex  string
	flagUploads string
	flagAvatars string
	flagVerbose bool
)

var svc *service.Service

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&flagAccount, "account", "local", "account id to operate as")
	rootCmd.PersistentFlags().StringVar(&flagKeyHex, "key-hex", "", "account codec key as hex (defaults to a fixed dev key, right-padded/truncated to 16 bytes)")
	rootCmd.PersistentFlags().StringVar(&flagUploads, "uploads-dir", "", "overrides FS_UPLOADS_DIR for this invocation")
	rootCmd.PersistentFlags().StringVar(&flagAvatars, "avatars-dir", "", "overrides FS_AVATARS_DIR for this invocation")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log internal operations (corrupt frames, ingest rollbacks) to stderr")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			flog.EnableDebugLogging()
		}
		if flagUploads != "" {
			os.Setenv("FS_UPLOADS_DIR", flagUploads)
		}
		if flagAvatars != "" {
			os.Setenv("FS_AVATARS_DIR", flagAvatars)
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		svc = service.New(cfg, codecKey(flagKeyHex))
		return nil
	}
}

// codecKey decodes hexKey, if given, as the account's block-cipher key;
// blockcipher.New right-pads/truncates whatever length results, so a
// missing or short --key-hex degrades gracefully rather than failing.
func codecKey(hexKey string) []byte {
	if hexKey == "" {
		return []byte("filestorectl-dev")
	}
	key := make([]byte, 0, len(hexKey)/2)
	for i := 0; i+1 < len(hexKey); i += 2 {
		var b byte
		if _, err := fmt.Sscanf(hexKey[i:i+2], "%02x", &b); err != nil {
			return []byte("filestorectl-dev")
		}
		key = append(key, b)
	}
	return key
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
