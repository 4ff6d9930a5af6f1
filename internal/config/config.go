// Package config centralises the environment-driven options the storage
// core is constructed with. There are no process-wide singletons: a
// Config is loaded once and passed into internal/service at construction.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable option the storage core is constructed with.
type Config struct {
	MaxFilesPerFolder      int
	MaxFilesPerUploadBatch int
	MaxSizePerUploadBatch  int64
	DefaultQuotaBytes      int64
	UploadsDir             string
	AvatarsDir             string
	MaxAvatarSize          int64
}

const (
	defaultMaxFilesPerFolder      = 10_000
	defaultMaxFilesPerUploadBatch = 5_000
	defaultMaxSizePerUploadBatch  = 5 << 30 // 5 GiB
	defaultQuotaBytes             = 10 << 30 // 10 GiB
	defaultUploadsDir             = "./data/uploads"
	defaultAvatarsDir             = "./data/avatars"
	defaultMaxAvatarSize          = 5 << 20 // 5 MiB
)

// Load reads configuration from environment variables (with an
// "FS_" prefix, e.g. FS_MAX_FILES_PER_FOLDER), falling back to documented
// defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FS")
	v.AutomaticEnv()

	v.SetDefault("max_files_per_folder", defaultMaxFilesPerFolder)
	v.SetDefault("max_files_per_upload_batch", defaultMaxFilesPerUploadBatch)
	v.SetDefault("max_size_per_upload_batch", defaultMaxSizePerUploadBatch)
	v.SetDefault("default_quota_bytes", defaultQuotaBytes)
	v.SetDefault("uploads_dir", defaultUploadsDir)
	v.SetDefault("avatars_dir", defaultAvatarsDir)
	v.SetDefault("max_avatar_size", defaultMaxAvatarSize)

	return &Config{
		MaxFilesPerFolder:      v.GetInt("max_files_per_folder"),
		MaxFilesPerUploadBatch: v.GetInt("max_files_per_upload_batch"),
		MaxSizePerUploadBatch:  v.GetInt64("max_size_per_upload_batch"),
		DefaultQuotaBytes:      v.GetInt64("default_quota_bytes"),
		UploadsDir:             v.GetString("uploads_dir"),
		AvatarsDir:             v.GetString("avatars_dir"),
		MaxAvatarSize:          v.GetInt64("max_avatar_size"),
	}, nil
}

// DefaultRequestTimeout is a suggested bound on how long a single ingest or
// bulk-rewrite operation may run before its caller cancels its context;
// neither the core nor internal/service applies it.
const DefaultRequestTimeout = 5 * time.Minute
