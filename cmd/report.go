// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/divyadesam/geosync/geocode"
	"github.com/divyadesam/geosync/temples"
	"github.com/divyadesam/geosync/utils/textutils"
)

func printSummary(w io.Writer, chain geocode.Chain, s temples.Summary) {
	n := func(v int) string { return textutils.FormatInt(int64(v)) }

	fmt.Fprintf(w, "\n📊 Coordinate update summary (%s)\n", chain.Names())
	fmt.Fprintf(w, "  Temples:              %s\n", n(s.Total))
	fmt.Fprintf(w, "  Significant updates:  %s\n", n(s.Significant))
	fmt.Fprintf(w, "  Minor updates:        %s (%s unchanged)\n", n(s.Minor), n(s.Unchanged))
	fmt.Fprintf(w, "  Skipped:              %s\n", n(s.Skipped))
	fmt.Fprintf(w, "  Failed:               %s\n", n(s.Failed))

	if s.RateLimited > 0 || s.TimedOut > 0 {
		fmt.Fprintf(w, "    rate limited calls: %s, timed out calls: %s\n", n(s.RateLimited), n(s.TimedOut))
	}
	fmt.Fprintf(w, "  Success rate:         %s\n", textutils.FormatPercent(s.Updated(), s.Attempted()))

	if len(s.Entries) > 0 {
		fmt.Fprintln(w, "\nSignificant updates:")

		for _, e := range s.Entries {
			fmt.Fprintf(w, "  - %s: %.2f km (%s)\n", e.Temple, e.Old.HaversineDistance(e.New)/1000, e.Source)
		}
	}

	if len(s.Failures) > 0 {
		fmt.Fprintln(w, "\nFailed temples:")

		for _, f := range s.Failures {
			fmt.Fprintf(w, "  - %s (%s): %s\n", f.DisplayName, f.Name, f.Reason)
		}
	}
}

func printAnalysis(w io.Writer, path string, a temples.Analysis) {
	n := func(v int) string { return textutils.FormatInt(int64(v)) }

	fmt.Fprintf(w, "🔍 %s: %s temples\n", path, n(a.Total))
	fmt.Fprintf(w, "  Missing display name: %s\n", n(a.MissingDisplayName))
	fmt.Fprintf(w, "  Missing perumal:      %s\n", n(a.MissingPerumal))
	fmt.Fprintf(w, "  Missing thaayaar:     %s\n", n(a.MissingThaayaar))
	fmt.Fprintf(w, "  Missing region:       %s\n", n(a.MissingRegion))
	fmt.Fprintf(w, "  No coordinates:       %s\n", n(a.InvalidCoordinates))

	if len(a.Issues) > 0 {
		fmt.Fprintln(w, "\nIncomplete temples:")

		for _, issue := range a.Issues {
			fmt.Fprintf(w, "  %3d. %-30s %v\n", issue.Index, issue.Name, issue.Fields)
		}
	}

	if len(a.Duplicates) > 0 {
		fmt.Fprintln(w, "\nPossible duplicates:")

		for _, d := range a.Duplicates {
			fmt.Fprintf(w, "  %q at %v\n", d.Key, d.Indexes)
		}
	}
}
