// =============================================================================
// csv2locale - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter, including:
//   - Writing the generated document to its destination
//   - Backing up a previous output before it is overwritten
//   - Run and backup naming utilities
//
// BACKUP STRATEGY:
//   - Backups are copies, the destination is then truncated and rewritten
//   - Relative backup directories are resolved against the output directory
//   - Backup names carry a timestamp and a short random suffix, so repeated
//     runs within the same second never collide
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helio-fm/helio-sequencer/internal/types"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output file operations for the converter.
type FileManager struct {
	// BackupExisting copies an existing destination before overwriting it.
	BackupExisting bool

	// BackupDir is the directory for backups. Relative paths are resolved
	// against the directory of the file being backed up.
	BackupDir string

	// UseTimestampSubdirs creates date-based subdirectories for backups.
	// Example: backup/2024/01/15/en.xml
	UseTimestampSubdirs bool

	// now is replaced in tests.
	now func() time.Time
}

// NewFileManager creates a new FileManager.
func NewFileManager(backupExisting bool, backupDir string) *FileManager {
	return &FileManager{
		BackupExisting: backupExisting,
		BackupDir:      backupDir,
		now:            time.Now,
	}
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteOutput writes data to path, creating the parent directory when
// missing. An existing file is truncated and rewritten; with BackupExisting it
// is copied to the backup directory first.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The complete file contents.
//
// RETURNS:
//   - The path of the backup, or "" when none was made.
//   - An *types.OutputError if any step fails.
func (fm *FileManager) WriteOutput(path string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", &types.OutputError{Path: path, Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	var backupPath string
	if fm.BackupExisting && FileExists(path) {
		var err error
		backupPath, err = fm.BackupFile(path)
		if err != nil {
			return "", &types.OutputError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return backupPath, &types.OutputError{Path: path, Err: err}
	}

	return backupPath, nil
}

// =============================================================================
// BACKUPS
// =============================================================================

// BackupFile copies filePath into the backup directory.
//
// RETURNS:
//   - The path to the backup copy.
//   - An error if the copy fails.
func (fm *FileManager) BackupFile(filePath string) (string, error) {
	backupPath := fm.getBackupPath(filePath)

	if err := os.MkdirAll(filepath.Dir(backupPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up file: %w", err)
	}

	return backupPath, nil
}

// getBackupPath constructs the backup path for a file.
func (fm *FileManager) getBackupPath(filePath string) string {
	backupDir := fm.BackupDir
	if backupDir == "" {
		backupDir = "backup"
	}
	if !filepath.IsAbs(backupDir) {
		backupDir = filepath.Join(filepath.Dir(filePath), backupDir)
	}

	now := time.Now()
	if fm.now != nil {
		now = fm.now()
	}

	if fm.UseTimestampSubdirs {
		backupDir = filepath.Join(
			backupDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
	}

	return filepath.Join(backupDir, GenerateBackupFileName(filepath.Base(filePath), now))
}

// =============================================================================
// NAMING
// =============================================================================

// GenerateBackupFileName returns name with a timestamp and a short random
// suffix inserted before the extension.
//
// EXAMPLE:
//
//	name:   "locales.xml"
//	output: "locales_20240115_143022_a1b2c3d4.xml"
func GenerateBackupFileName(name string, now time.Time) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	suffix := strings.SplitN(uuid.New().String(), "-", 2)[0]

	return fmt.Sprintf("%s_%s_%s%s", base, now.Format("20060102_150405"), suffix, ext)
}

// NewRunID returns a unique identifier for one converter run.
func NewRunID() string {
	return uuid.New().String()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
