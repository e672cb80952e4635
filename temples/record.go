// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

// Package temples reads, reconciles and writes the Divya Desam dataset kept
// as a JavaScript array literal in temple-data.js.
package temples

import "github.com/divyadesam/geosync/spatial"

// Temple is one record of the dataset. Absent string fields are "" and
// absent coordinates are 0.
type Temple struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Link        string  `json:"link"`
	Perumal     string  `json:"perumal"`
	Thaayaar    string  `json:"thaayaar"`
	Region      string  `json:"region"`
}

// Point returns the temple coordinates.
func (t Temple) Point() spatial.Point {
	return spatial.Point{Lat: t.Lat, Lng: t.Lng}
}

// Geocodable reports whether the temple can be sent to a provider.
func (t Temple) Geocodable() bool {
	return t.DisplayName != ""
}

// UpdateLogEntry records a significant coordinate change.
type UpdateLogEntry struct {
	Temple     string        `json:"temple"`
	Old        spatial.Point `json:"old"`
	New        spatial.Point `json:"new"`
	Difference spatial.Point `json:"difference"`
	Source     string        `json:"source"`
}
