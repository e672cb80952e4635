// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import "github.com/divyadesam/geosync/geocode"

// unchangedThreshold separates minor adjustments from no real change.
const unchangedThreshold = 0.001

// FailedRecord names a record every provider failed on.
type FailedRecord struct {
	Name        string
	DisplayName string
	Reason      string
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Total       int
	Significant int
	Minor       int // includes Unchanged
	Unchanged   int // minor updates within 0.001 degrees on both axes
	Skipped     int
	Failed      int
	RateLimited int // provider calls throttled, across all failed records
	TimedOut    int // provider calls that timed out, across all failed records
	Failures    []FailedRecord
	Entries     []UpdateLogEntry
}

// Summarize counts outcomes by status.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes), Entries: Entries(outcomes)}

	for _, o := range outcomes {
		switch o.Status {
		case StatusSignificant:
			s.Significant++
		case StatusMinor:
			s.Minor++

			if o.Difference.Lat <= unchangedThreshold && o.Difference.Lng <= unchangedThreshold {
				s.Unchanged++
			}
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++

			for _, f := range o.Failures {
				switch {
				case geocode.IsRateLimitError(f.Err):
					s.RateLimited++
				case geocode.IsTimeoutError(f.Err):
					s.TimedOut++
				}
			}

			s.Failures = append(s.Failures, FailedRecord{
				Name:        o.Original.Name,
				DisplayName: o.Original.DisplayName,
				Reason:      o.Reason(),
			})
		}
	}

	return s
}

// Updated returns how many records received new coordinates.
func (s Summary) Updated() int {
	return s.Significant + s.Minor
}

// Attempted returns how many records were sent to the providers.
func (s Summary) Attempted() int {
	return s.Updated() + s.Failed
}

// SuccessRate returns the share of attempted records that were updated, in
// [0, 1]. A run that attempted nothing reports 0.
func (s Summary) SuccessRate() float64 {
	if s.Attempted() == 0 {
		return 0
	}

	return float64(s.Updated()) / float64(s.Attempted())
}
