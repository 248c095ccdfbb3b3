package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to a file atomically using a temp file + rename.
// A reader never sees a half-written config, even if the process dies
// mid-write.
//
// Steps:
//  1. Write data to a temp file next to the target
//  2. fsync it and apply perm
//  3. Rename it over the target (atomic on POSIX)
//
// If any step fails, the original file (if it exists) remains unchanged.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	// Same directory as the target so the rename stays on one filesystem.
	// CreateTemp opens the file 0600, so the token is never exposed.
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file unless the rename went through
	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// Flush to disk before the rename makes it visible
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	// Replace the target in one step
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to target: %w", err)
	}

	success = true
	return nil
}

// AtomicWriteWithBackup copies an existing file at path to path.bak, then
// writes data atomically. The backup keeps the original permissions. If the
// write fails, both the original and the backup are intact.
func AtomicWriteWithBackup(path string, data []byte, perm os.FileMode) error {
	// Back up the current file, if any
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		info, statErr := os.Stat(path)
		if statErr != nil {
			return fmt.Errorf("failed to stat existing file: %w", statErr)
		}
		if err := AtomicWrite(path+".bak", old, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read existing file: %w", err)
	}

	return AtomicWrite(path, data, perm)
}
