// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import "fmt"

// FormatError means the array literal could not be located in the source
// text at all.
type FormatError struct {
	Anchor string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("could not parse temple data: no %q array literal found", e.Anchor)
}

// PersistenceError is a failure to back up or write one of the output files.
type PersistenceError struct {
	Op   string // "read", "backup", "write" or "write log"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
