// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile replaces path with data in one step: a reader sees the old
// contents or the new ones, never a mix. Missing parent directories are
// created with dirPerm; the file ends up with perm.
func AtomicWriteFile(path string, data []byte, perm, dirPerm os.FileMode) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}

	// The staging file must live next to target or the rename may cross
	// filesystems.
	staged, err := stage(dir, filepath.Base(target), data, perm)
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	if err := os.Rename(staged, target); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	syncDir(dir)
	return nil
}

// stage writes data to a hidden file in dir and flushes it to disk. It
// returns the staging file's name; on error nothing is left behind.
func stage(dir, base string, data []byte, perm os.FileMode) (_ string, err error) {
	f, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(name)
		}
	}()

	if err = f.Chmod(perm); err != nil {
		return "", err
	}
	if _, err = f.Write(data); err != nil {
		return "", err
	}
	if err = f.Sync(); err != nil {
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

// syncDir flushes the directory entry for the rename. Best effort; not every
// platform lets a directory be opened for sync.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
