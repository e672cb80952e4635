// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ArrayName is the variable holding the dataset in temple-data.js.
const ArrayName = "divyaDesams"

// arrayAnchor matches the assignment up to the opening bracket.
var arrayAnchor = regexp.MustCompile(`(?:(?:const|let|var)\s+|window\.)` + ArrayName + `\s*=\s*\[`)

// Mode tells which parser produced a ParseResult.
type Mode int

const (
	// ModeStrict the literal decoded as JSON after normalization.
	ModeStrict Mode = iota
	// ModeDegraded the line scanner recovered the records.
	ModeDegraded
)

func (m Mode) String() string {
	if m == ModeDegraded {
		return "degraded"
	}

	return "strict"
}

// ParseResult is the outcome of Parse.
type ParseResult struct {
	Records  []Temple
	Mode     Mode
	Warnings []string
}

// Degraded reports whether the fallback parser was used.
func (r *ParseResult) Degraded() bool {
	return r.Mode == ModeDegraded
}

// Parse extracts the dataset from the contents of temple-data.js. It tries
// ParseStrict first and falls back to ParseFallback. The only error is a
// *FormatError when the array literal is missing.
func Parse(text string) (*ParseResult, error) {
	region, err := Extract(text)
	if err != nil {
		return nil, err
	}

	records, err := ParseStrict(region)
	if err == nil {
		return &ParseResult{Records: records, Mode: ModeStrict}, nil
	}

	records, warnings := ParseFallback(region)

	return &ParseResult{
		Records:  records,
		Mode:     ModeDegraded,
		Warnings: append([]string{"strict decode failed: " + err.Error()}, warnings...),
	}, nil
}

// Extract returns the bracketed array literal assigned to ArrayName. The
// closing bracket is found by matching brackets outside quoted strings and
// comments.
func Extract(text string) (string, error) {
	loc := arrayAnchor.FindStringIndex(text)
	if loc == nil {
		return "", &FormatError{Anchor: ArrayName}
	}

	start := loc[1] - 1

	end, ok := matchBracket(text, start)
	if !ok {
		return "", &FormatError{Anchor: ArrayName}
	}

	return text[start:end], nil
}

// matchBracket returns the index just past the bracket closing the one at
// start.
func matchBracket(src string, start int) (int, bool) {
	depth := 0

	for i := start; i < len(src); {
		c := src[i]

		switch {
		case c == '"':
			i = scanDoubleQuoted(src, i)
		case c == '\'':
			_, i, _ = scanSingleQuoted(src, i)
		case strings.HasPrefix(src[i:], "//"):
			i = skipUntil(src, i, "\n", false)
		case strings.HasPrefix(src[i:], "/*"):
			i = skipUntil(src, i+2, "*/", true)
		case c == '[' || c == '{':
			depth++
			i++
		case c == ']' || c == '}':
			depth--
			i++

			if depth == 0 {
				return i, c == ']'
			}
		default:
			i++
		}
	}

	return 0, false
}

// coordinate accepts a JSON number, a numeric string or null.
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %s", data)
	}

	*c = coordinate(v)

	return nil
}

// lenientString accepts a JSON string, or a bare number or boolean kept as
// written. null leaves it empty.
type lenientString string

func (t *lenientString) UnmarshalJSON(data []byte) error {
	s := string(data)

	switch {
	case s == "null":
		return nil
	case strings.HasPrefix(s, `"`):
		return json.Unmarshal(data, (*string)(t))
	case jsonScalar.MatchString(s):
		*t = lenientString(s)

		return nil
	default:
		return fmt.Errorf("invalid text value %s", data)
	}
}

type rawTemple struct {
	Name        lenientString `json:"name"`
	DisplayName lenientString `json:"displayName"`
	Lat         coordinate    `json:"lat"`
	Lng         coordinate    `json:"lng"`
	Link        lenientString `json:"link"`
	Perumal     lenientString `json:"perumal"`
	Thaayaar    lenientString `json:"thaayaar"`
	Region      lenientString `json:"region"`
}

// ParseStrict normalizes the object literal to JSON and decodes it.
func ParseStrict(region string) ([]Temple, error) {
	var raw []rawTemple
	if err := json.Unmarshal([]byte(normalize(region)), &raw); err != nil {
		return nil, fmt.Errorf("decoding normalized literal: %w", err)
	}

	out := make([]Temple, len(raw))
	for i, r := range raw {
		out[i] = Temple{
			Name:        string(r.Name),
			DisplayName: string(r.DisplayName),
			Lat:         float64(r.Lat),
			Lng:         float64(r.Lng),
			Link:        string(r.Link),
			Perumal:     string(r.Perumal),
			Thaayaar:    string(r.Thaayaar),
			Region:      string(r.Region),
		}
	}

	return out, nil
}

var jsonScalar = regexp.MustCompile(`^(?:-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?|true|false|null)$`)

// normalize rewrites a JavaScript object literal as JSON: bare keys and bare
// non-JSON scalar values are quoted, single-quoted strings become
// double-quoted, comments and trailing commas are dropped. Content of quoted
// strings is never altered. Malformed input yields malformed output.
func normalize(src string) string {
	var (
		b         strings.Builder
		stack     []byte
		expectKey bool
	)

	b.Grow(len(src) + len(src)/4)

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '"':
			j := scanDoubleQuoted(src, i)
			b.WriteString(src[i:j])
			i = j
		case c == '\'':
			s, j, ok := scanSingleQuoted(src, i)
			if ok {
				b.WriteString(quote(s))
			} else {
				b.WriteString(src[i:j])
			}

			i = j
		case strings.HasPrefix(src[i:], "//"):
			i = skipUntil(src, i, "\n", false)
		case strings.HasPrefix(src[i:], "/*"):
			i = skipUntil(src, i+2, "*/", true)
		case c == '{' || c == '[':
			stack = append(stack, c)
			expectKey = c == '{'
			b.WriteByte(c)
			i++
		case c == '}' || c == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

			expectKey = false
			b.WriteByte(c)
			i++
		case c == ',':
			if !trailingComma(src, i+1) {
				b.WriteByte(c)
			}

			expectKey = len(stack) > 0 && stack[len(stack)-1] == '{'
			i++
		case c == ':':
			expectKey = false
			b.WriteByte(c)
			i++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			b.WriteByte(c)
			i++
		default:
			stop := ",}]\n"
			if expectKey {
				stop = ":,}] \t\r\n"
			}

			j := i
			for j < len(src) && !strings.ContainsRune(stop, rune(src[j])) && !commentAfterSpace(src, j) {
				j++
			}

			tok := strings.TrimSpace(src[i:j])
			if !expectKey && jsonScalar.MatchString(tok) {
				b.WriteString(tok)
			} else {
				b.WriteString(quote(tok))
			}

			i = j
		}
	}

	return b.String()
}

// scanDoubleQuoted returns the index just past the string starting at i.
func scanDoubleQuoted(src string, i int) int {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}

	return len(src)
}

// scanSingleQuoted decodes the single-quoted string starting at i. ok is
// false when the string is not terminated.
func scanSingleQuoted(src string, i int) (string, int, bool) {
	var b strings.Builder

	for j := i + 1; j < len(src); j++ {
		c := src[j]

		switch {
		case c == '\'':
			return b.String(), j + 1, true
		case c == '\\' && j+1 < len(src):
			j++
			switch src[j] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(src[j])
			}
		default:
			b.WriteByte(c)
		}
	}

	return "", len(src), false
}

// commentAfterSpace reports whether a comment starts at j after whitespace.
func commentAfterSpace(src string, j int) bool {
	return j > 0 && (src[j-1] == ' ' || src[j-1] == '\t') &&
		(strings.HasPrefix(src[j:], "//") || strings.HasPrefix(src[j:], "/*"))
}

func skipUntil(src string, i int, end string, consume bool) int {
	k := strings.Index(src[i:], end)
	if k < 0 {
		return len(src)
	}

	if consume {
		return i + k + len(end)
	}

	return i + k
}

// trailingComma reports whether the next significant byte after i closes a
// container.
func trailingComma(src string, i int) bool {
	for i < len(src) {
		switch {
		case strings.ContainsRune(" \t\r\n", rune(src[i])):
			i++
		case strings.HasPrefix(src[i:], "//"):
			i = skipUntil(src, i, "\n", false)
		case strings.HasPrefix(src[i:], "/*"):
			i = skipUntil(src, i+2, "*/", true)
		default:
			return src[i] == '}' || src[i] == ']'
		}
	}

	return false
}

// quote renders s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)

	return strings.TrimSuffix(buf.String(), "\n")
}
