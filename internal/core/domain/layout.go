package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	// SculleryDirName is the name of the internal workspace directory.
	SculleryDirName = ".scullery"

	// CheckpointDirName is the name of the progress checkpoint directory.
	CheckpointDirName = "checkpoints"

	// BackupDirName is the name of the pre-modification backup directory.
	BackupDirName = "backups"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// NutritionDirName is the name of the nutrition API response cache directory.
	NutritionDirName = "nutrition"

	// ReportDirName is the name of the report output directory.
	ReportDirName = "reports"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "scullery.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultSculleryPath returns the default root directory for scullery metadata.
func DefaultSculleryPath() string {
	return SculleryDirName
}

// DefaultCheckpointPath returns the default path for progress checkpoints.
func DefaultCheckpointPath() string {
	return filepath.Join(SculleryDirName, CheckpointDirName)
}

// DefaultBackupPath returns the default path for file backups.
func DefaultBackupPath() string {
	return filepath.Join(SculleryDirName, BackupDirName)
}

// DefaultNutritionCachePath returns the default path for the nutrition
// API response cache.
func DefaultNutritionCachePath() string {
	return filepath.Join(SculleryDirName, CacheDirName, NutritionDirName)
}

// DefaultReportPath returns the default path for generated reports.
func DefaultReportPath() string {
	return filepath.Join(SculleryDirName, ReportDirName)
}

// ReadinessReportName returns the timestamped CI report filename, matching
// the cicd-report-<timestamp>.json convention consumed by the pipeline.
func ReadinessReportName(t time.Time) string {
	return fmt.Sprintf("cicd-report-%s.json", t.UTC().Format("20060102T150405Z"))
}
