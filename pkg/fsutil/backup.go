package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores backups alongside the original file with a
	// .unfence.bak suffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".unfence.bak"

// BackupConfig controls backup behavior before the committer overwrites an
// existing file.
type BackupConfig struct {
	// Enabled indicates whether backups should be created.
	Enabled bool

	// Mode specifies how backups are stored.
	Mode BackupMode
}

// DefaultBackupConfig returns backup defaults. Backups are disabled by
// default; extraction is expected to overwrite.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled: false,
		Mode:    BackupModeSidecar,
	}
}

// BackupPath returns the backup path for the given file based on the mode.
func BackupPath(path string, mode BackupMode) string {
	switch mode {
	case BackupModeSidecar:
		return path + BackupSuffix
	case BackupModeNone:
		return ""
	default:
		return path + BackupSuffix
	}
}

// CreateBackup creates a backup of the file at path if one does not already
// exist. Returns true if a backup was created.
//
// Backup creation is idempotent: an existing backup is never overwritten, so
// repeated extraction runs keep the pre-run original.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		// Backup exists, do not overwrite.
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing to back up.
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
