// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"strings"

	"github.com/divyadesam/geosync/utils/textutils"
)

// Issue is a data quality problem in one record.
type Issue struct {
	Index  int // 1-based position in the dataset
	Name   string
	Fields []string // missing or invalid fields
}

// Duplicate groups records whose names fold to the same key.
type Duplicate struct {
	Key     string
	Indexes []int // 1-based
}

// Analysis reports missing data in a dataset.
type Analysis struct {
	Total              int
	MissingDisplayName int
	MissingPerumal     int
	MissingThaayaar    int
	MissingRegion      int
	InvalidCoordinates int
	Issues             []Issue
	Duplicates         []Duplicate
}

// isMissing treats blanks and the "Unknown" placeholder as missing.
func isMissing(v string) bool {
	v = strings.TrimSpace(v)

	return v == "" || strings.EqualFold(v, "unknown")
}

// Analyze reports records with missing attributes, (0,0) coordinates and
// names that collide once accents and case are folded.
func Analyze(records []Temple) Analysis {
	a := Analysis{Total: len(records)}
	seen := make(map[string]int)

	for i, t := range records {
		var fields []string

		if isMissing(t.DisplayName) {
			fields = append(fields, "displayName")
			a.MissingDisplayName++
		}

		if isMissing(t.Perumal) {
			fields = append(fields, "perumal")
			a.MissingPerumal++
		}

		if isMissing(t.Thaayaar) {
			fields = append(fields, "thaayaar")
			a.MissingThaayaar++
		}

		if isMissing(t.Region) {
			fields = append(fields, "region")
			a.MissingRegion++
		}

		if t.Point().IsZero() {
			fields = append(fields, "coordinates")
			a.InvalidCoordinates++
		}

		if len(fields) > 0 {
			a.Issues = append(a.Issues, Issue{Index: i + 1, Name: t.Name, Fields: fields})
		}

		key := textutils.FoldKey(t.Name)
		if key == "" {
			continue
		}

		if j, ok := seen[key]; ok {
			a.Duplicates[j].Indexes = append(a.Duplicates[j].Indexes, i+1)

			continue
		}

		seen[key] = len(a.Duplicates)
		a.Duplicates = append(a.Duplicates, Duplicate{Key: key, Indexes: []int{i + 1}})
	}

	dups := a.Duplicates[:0]
	for _, d := range a.Duplicates {
		if len(d.Indexes) > 1 {
			dups = append(dups, d)
		}
	}

	a.Duplicates = dups

	return a
}
