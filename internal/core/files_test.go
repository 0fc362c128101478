package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illarion/twinvault/internal/security"
	"github.com/illarion/twinvault/internal/vault"
)

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	records, err := ImportFiles([]string{p, filepath.Join(dir, "sub")}, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "notes.txt", records[0].Name)
	assert.Equal(t, []byte("hello"), records[0].Payload)
	assert.EqualValues(t, 5, records[0].Size)
	assert.False(t, records[0].DateAdded.IsZero())
}

func TestImportFilesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ImportFiles([]string{filepath.Join(dir, "missing")}, nil)
	assert.Error(t, err)

	a := filepath.Join(dir, "a", "same.txt")
	b := filepath.Join(dir, "b", "same.txt")
	for _, p := range []string{a, b} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0700))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0600))
	}
	_, err = ImportFiles([]string{a, b}, nil)
	assert.Error(t, err, "two files with the same base name")
}

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()

	results, status, err := ExportFiles(dir, []vault.FileRecord{record("out.txt", "data")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "out.txt"), results[0].Path)
	assert.NotNil(t, status)

	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, _, err = ExportFiles(dir, []vault.FileRecord{record("out.txt", "other")})
	assert.ErrorIs(t, err, security.ErrFileExists)
}

func TestExportFilesRejectsEscapingNames(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "export")
	require.NoError(t, os.Mkdir(dir, 0700))

	_, _, err := ExportFiles(dir, []vault.FileRecord{record("../evil.txt", "x")})
	assert.ErrorIs(t, err, security.ErrPathEscapes)
	_, statErr := os.Stat(filepath.Join(parent, "evil.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
