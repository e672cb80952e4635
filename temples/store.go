// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupLayout is the timestamp format of backup file names.
const backupLayout = "20060102_150405"

// FileStore reads and replaces the dataset file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the dataset at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the dataset path.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the whole dataset file.
func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", &PersistenceError{Op: "read", Path: s.path, Err: err}
	}

	return string(data), nil
}

// BackupPath returns the backup file name for a backup taken at now, e.g.
// temple-data-backup-20261014_153000.js next to temple-data.js.
func (s *FileStore) BackupPath(now time.Time) string {
	ext := filepath.Ext(s.path)
	stem := strings.TrimSuffix(s.path, ext)

	return fmt.Sprintf("%s-backup-%s%s", stem, now.Format(backupLayout), ext)
}

// Backup copies the dataset to BackupPath(now) and returns that path.
func (s *FileStore) Backup(now time.Time) (_ string, err error) {
	dst := s.BackupPath(now)

	in, err := os.Open(s.path)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: s.path, Err: err}
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: s.path, Err: err}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fi.Mode().Perm())
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: dst, Err: err}
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &PersistenceError{Op: "backup", Path: dst, Err: cerr}
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return "", &PersistenceError{Op: "backup", Path: dst, Err: err}
	}

	// OpenFile applies the umask.
	if err := out.Chmod(fi.Mode().Perm()); err != nil {
		return "", &PersistenceError{Op: "backup", Path: dst, Err: err}
	}

	return dst, nil
}

// Write replaces the dataset with content. The new content goes to a
// temporary file in the same directory that is renamed over the dataset, so
// the original is either fully replaced or left untouched.
func (s *FileStore) Write(content string) error {
	return writeAtomically(s.path, []byte(content), "write")
}

// WriteLog replaces the change log at path with entries as indented JSON.
func WriteLog(path string, entries []UpdateLogEntry) error {
	if entries == nil {
		entries = []UpdateLogEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "write log", Path: path, Err: fmt.Errorf("marshaling JSON: %w", err)}
	}

	return writeAtomically(filepath.Clean(path), append(data, '\n'), "write log")
}

func writeAtomically(path string, data []byte, op string) (err error) {
	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Op: op, Path: path, Err: err}
	}

	defer func() {
		if err == nil {
			return
		}

		if rerr := removeIfExists(tmp.Name()); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return &PersistenceError{Op: op, Path: path, Err: err}
	}

	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: op, Path: path, Err: err}
	}

	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return &PersistenceError{Op: op, Path: path, Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return &PersistenceError{Op: op, Path: path, Err: err}
	}

	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing temporary file: %w", err)
	}

	return nil
}
