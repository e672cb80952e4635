// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"strconv"
	"strings"
	"time"
)

const headerTemplate = `// Comprehensive Divya Desam temple database
// 108 temples with complete information including Perumal, Thaayaar, and Regional classification
// Coordinates updated on {{date}} using Google Places API + HERE Maps

const ` + ArrayName + ` = `

// Footer is emitted verbatim after the array. It does not depend on the
// records. Note the trailing space after the Pandiya entry.
const Footer = `

// Regional summary
const regionalSummary = {
    "Chola": 40,
    "Pandiya": 18,` + " " + `
    "Malai": 11,
    "Vaduga": 14,
    "Tonda": 8,
    "Vada": 7
};

// Make temples available globally
if (typeof window !== 'undefined') {
    window.divyaDesams = divyaDesams;
    window.regionalSummary = regionalSummary;
    console.log('✅ Temple data loaded successfully:', divyaDesams.length, 'temples');
}

// For Node.js (testing)
if (typeof module !== 'undefined' && module.exports) {
    module.exports = { divyaDesams, regionalSummary };
}`

// Header returns the comment block and assignment that precede the array.
func Header(generatedAt time.Time) string {
	return strings.Replace(headerTemplate, "{{date}}", generatedAt.Format(time.DateOnly), 1)
}

// Serialize renders records as the contents of temple-data.js, one record
// per line in fixed field order.
func Serialize(records []Temple, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(Header(generatedAt))
	b.WriteString("[\n")

	for i, t := range records {
		b.WriteString("    ")
		b.WriteString(FormatRecord(t))

		if i < len(records)-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	b.WriteString("];")
	b.WriteString(Footer)

	return b.String()
}

// FormatRecord renders one record as a single-line object literal.
func FormatRecord(t Temple) string {
	var b strings.Builder

	b.WriteString(`{ name: `)
	b.WriteString(quote(t.Name))
	b.WriteString(`, displayName: `)
	b.WriteString(quote(t.DisplayName))
	b.WriteString(`, lat: `)
	b.WriteString(formatCoordinate(t.Lat))
	b.WriteString(`, lng: `)
	b.WriteString(formatCoordinate(t.Lng))
	b.WriteString(`, link: `)
	b.WriteString(quote(t.Link))
	b.WriteString(`, perumal: `)
	b.WriteString(quote(t.Perumal))
	b.WriteString(`, thaayaar: `)
	b.WriteString(quote(t.Thaayaar))
	b.WriteString(`, region: `)
	b.WriteString(quote(t.Region))
	b.WriteString(` }`)

	return b.String()
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
