// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/divyadesam/geosync/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backupTime = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func writeDataset(t *testing.T, content string) *FileStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "temple-data.js")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return NewFileStore(path)
}

func TestFileStoreBackupPath(t *testing.T) {
	s := NewFileStore("data/temple-data.js")

	assert.Equal(t, filepath.Join("data", "temple-data-backup-20261014_153000.js"), s.BackupPath(backupTime))
}

func TestFileStoreBackupThenWrite(t *testing.T) {
	s := writeDataset(t, "original")

	backup, err := s.Backup(backupTime)
	require.NoError(t, err)
	assert.Equal(t, s.BackupPath(backupTime), backup)

	require.NoError(t, s.Write("replaced"))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "replaced", got)

	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "original", string(saved))

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileStoreBackupKeepsMode(t *testing.T) {
	for _, mode := range []os.FileMode{0o644, 0o640} {
		t.Run(mode.String(), func(t *testing.T) {
			s := writeDataset(t, "original")
			require.NoError(t, os.Chmod(s.Path(), mode))

			backup, err := s.Backup(backupTime)
			require.NoError(t, err)

			fi, err := os.Stat(backup)
			require.NoError(t, err)
			assert.Equal(t, mode, fi.Mode().Perm())
		})
	}
}

func TestFileStoreBackupNeverOverwrites(t *testing.T) {
	s := writeDataset(t, "original")

	_, err := s.Backup(backupTime)
	require.NoError(t, err)

	_, err = s.Backup(backupTime)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "backup", perr.Op)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestFileStoreWritePreservesMode(t *testing.T) {
	s := writeDataset(t, "original")
	require.NoError(t, os.Chmod(s.Path(), 0o640))

	require.NoError(t, s.Write("replaced"))

	fi, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
}

func TestFileStoreReadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.js"))

	_, err := s.Read()

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "read", perr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStoreWriteToMissingDirectory(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "temple-data.js"))

	err := s.Write("x")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "write", perr.Op)
}

func TestWriteLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinate-updates-log.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	entries := []UpdateLogEntry{{
		Temple:     "Srirangam",
		Old:        spatial.Point{Lat: 10.85, Lng: 78.69},
		New:        spatial.Point{Lat: 10.8624, Lng: 78.689},
		Difference: spatial.Point{Lat: 0.0124, Lng: 0.001},
		Source:     "Google",
	}}

	require.NoError(t, WriteLog(path, entries))

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[
  {
    "temple": "Srirangam",
    "old": {
      "lat": 10.85,
      "lng": 78.69
    },
    "new": {
      "lat": 10.8624,
      "lng": 78.689
    },
    "difference": {
      "lat": 0.0124,
      "lng": 0.001
    },
    "source": "Google"
  }
]
`
	assert.Equal(t, want, string(got))
}

func TestWriteLogEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	require.NoError(t, WriteLog(path, nil))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(got))
}
