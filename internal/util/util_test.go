// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("hello"), 0600, 0700))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("x"), 0600, 0700))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, AtomicWriteFile(path, []byte("first version"), 0600, 0700))
	require.NoError(t, AtomicWriteFile(path, []byte("second"), 0600, 0700))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestAtomicWriteFile_SetsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "secret.toml")
	require.NoError(t, AtomicWriteFile(path, []byte("x"), 0600, 0700))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAtomicWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AtomicWriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0600, 0700))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.txt", entries[0].Name())
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ascii", "hello world", 8, "hello..."},
		{"narrow", "hello world", 3, "hel"},
		{"zero", "hello", 0, ""},
		{"wide chars", "日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWidth(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.maxWidth)
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "日本 ", PadRight("日本", 5))
	assert.Equal(t, "toolong", PadRight("toolong", 3))
}
