// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DroppedFieldsWarning is always reported by ParseFallback when it recovers
// at least one record.
// TODO: decide with the dataset owners whether the line scanner should keep
// link, perumal, thaayaar and region instead of dropping them.
const DroppedFieldsWarning = "fallback parser recovers only name, displayName, lat and lng; link, perumal, thaayaar and region are dropped"

var recordStart = regexp.MustCompile(`^\{\s*["']?name["']?\s*:`)

// ParseFallback scans the array literal line by line. It is used when
// ParseStrict fails and recovers name, displayName, lat and lng only.
//
// A record starts on a `{ name: ...` line (or a bare `{` line) and ends on a
// closing brace, at the next record start or at the end of the input. Fields
// are separated by ", " outside quotes.
func ParseFallback(region string) ([]Temple, []string) {
	var (
		out      []Temple
		warnings []string
		cur      *Temple
		fields   int
	)

	finish := func() {
		if cur != nil && fields > 0 {
			out = append(out, *cur)
		}

		cur, fields = nil, 0
	}

	for n, line := range strings.Split(region, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(line), "["), "]"))
		line = strings.TrimSpace(strings.TrimRight(line, ","))

		switch {
		case recordStart.MatchString(line):
			finish()

			cur = &Temple{}
			body, closed := strings.CutSuffix(strings.TrimPrefix(line, "{"), "}")

			k, w := applyFields(cur, body, n+1)
			fields += k

			warnings = append(warnings, w...)
			if closed {
				finish()
			}
		case line == "{":
			finish()

			cur = &Temple{}
		case strings.HasPrefix(line, "}"):
			finish()
		case cur != nil && strings.Contains(line, ":"):
			body, closed := strings.CutSuffix(line, "}")

			k, w := applyFields(cur, body, n+1)
			fields += k

			warnings = append(warnings, w...)
			if closed {
				finish()
			}
		}
	}

	finish()

	if len(out) > 0 {
		warnings = append(warnings, DroppedFieldsWarning)
	}

	return out, warnings
}

// applyFields sets the recognized fields found in body on t. It returns how
// many fields were set and a warning per unparsable coordinate.
func applyFields(t *Temple, body string, lineNo int) (int, []string) {
	var (
		set      int
		warnings []string
	)

	for _, part := range splitFields(body) {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}

		key = strings.Trim(strings.TrimSpace(key), "{\"' ")
		value = unquoteLoose(strings.TrimSpace(value))

		switch key {
		case "name":
			t.Name = value
			set++
		case "displayName":
			t.DisplayName = value
			set++
		case "lat", "lng":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: invalid %s %q for %q, using 0", lineNo, key, value, t.Name))

				continue
			}

			if key == "lat" {
				t.Lat = v
			} else {
				t.Lng = v
			}

			set++
		}
	}

	return set, warnings
}

// splitFields splits s on ", " boundaries that are not inside a quoted
// string.
func splitFields(s string) []string {
	var (
		parts []string
		quote byte
		start int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',' && i+1 < len(s) && s[i+1] == ' ':
			parts = append(parts, s[start:i])
			start = i + 2
			i++
		}
	}

	return append(parts, s[start:])
}

// unquoteLoose strips surrounding quotes. Properly escaped double-quoted
// values are decoded; anything else has its quote characters trimmed.
func unquoteLoose(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		var s string
		if err := json.Unmarshal([]byte(v), &s); err == nil {
			return s
		}
	}

	return strings.Trim(v, `"'`)
}
