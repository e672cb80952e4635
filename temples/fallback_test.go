// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFallback(t *testing.T) {
	tests := []struct {
		name   string
		region string
		want   []Temple
	}{
		{
			name: "single line records keep order and the last record",
			region: "[\n" +
				"    { name: \"a\", displayName: \"Temple A\", lat: 10.1, lng: 78.1, link: \"https://x\", perumal: \"P\" },\n" +
				"    { name: \"b\", displayName: \"Temple B\", lat: 11.2, lng: 79.2 },\n" +
				"    { name: \"c\", displayName: \"Temple C\", lat: 12.3, lng: 80.3 }\n" +
				"]",
			want: []Temple{
				{Name: "a", DisplayName: "Temple A", Lat: 10.1, Lng: 78.1},
				{Name: "b", DisplayName: "Temple B", Lat: 11.2, Lng: 79.2},
				{Name: "c", DisplayName: "Temple C", Lat: 12.3, Lng: 80.3},
			},
		},
		{
			name: "record closed by a bare brace line",
			region: "[\n" +
				"  { name: 'a', displayName: 'Temple A', lat: 10.1, lng: 78.1\n" +
				"  },\n" +
				"  { name: 'b', displayName: 'Temple B'\n" +
				"  }\n" +
				"]",
			want: []Temple{
				{Name: "a", DisplayName: "Temple A", Lat: 10.1, Lng: 78.1},
				{Name: "b", DisplayName: "Temple B"},
			},
		},
		{
			name: "multi line record",
			region: "[\n" +
				"  {\n" +
				"    name: \"a\",\n" +
				"    displayName: \"Temple A\",\n" +
				"    lat: 10.1,\n" +
				"    lng: 78.1\n" +
				"  }\n" +
				"]",
			want: []Temple{{Name: "a", DisplayName: "Temple A", Lat: 10.1, Lng: 78.1}},
		},
		{
			name:   "comma inside a quoted display name",
			region: `[{ name: "tv", displayName: "Parthasarathy Temple, Chennai", lat: 13.05 }]`,
			want:   []Temple{{Name: "tv", DisplayName: "Parthasarathy Temple, Chennai", Lat: 13.05}},
		},
		{
			name:   "escaped quotes are decoded",
			region: `[{ name: "q", displayName: "Sri \"Adi\" Kesava" }]`,
			want:   []Temple{{Name: "q", DisplayName: `Sri "Adi" Kesava`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := ParseFallback(tt.region)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseFallback() mismatch (-want +got):\n%s", diff)
			}

			assert.Contains(t, warnings, DroppedFieldsWarning)
		})
	}
}

func TestParseFallbackInvalidCoordinate(t *testing.T) {
	got, warnings := ParseFallback(`[{ name: "a", displayName: "A", lat: 10.8.5, lng: 78.69 }]`)

	require.Len(t, got, 1)
	assert.Zero(t, got[0].Lat)
	assert.InDelta(t, 78.69, got[0].Lng, 1e-9)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `invalid lat "10.8.5"`)
}

func TestParseFallbackNothingToRecover(t *testing.T) {
	got, warnings := ParseFallback("[\n  garbage\n]")

	assert.Empty(t, got)
	assert.Empty(t, warnings)
}

// The strict and fallback parsers agree on the four primary fields of
// serialized output.
func TestParseFallbackOnSerializedData(t *testing.T) {
	region, err := Extract(Serialize(sampleTemples, time.Now()))
	require.NoError(t, err)

	got, _ := ParseFallback(region)
	require.Len(t, got, len(sampleTemples))

	for i, want := range sampleTemples {
		assert.Equal(t, want.Name, got[i].Name)
		assert.Equal(t, want.DisplayName, got[i].DisplayName)
		assert.InDelta(t, want.Lat, got[i].Lat, 1e-12)
		assert.InDelta(t, want.Lng, got[i].Lng, 1e-12)
		assert.Empty(t, got[i].Link)
		assert.Empty(t, got[i].Region)
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`a: 1, b: 2`, []string{"a: 1", "b: 2"}},
		{`a: "x, y", b: 'p, q'`, []string{`a: "x, y"`, `b: 'p, q'`}},
		{`a: "say \"hi, there\"", b: 1`, []string{`a: "say \"hi, there\""`, "b: 1"}},
		{`a: 1,b: 2`, []string{"a: 1,b: 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFields(tt.in))
		})
	}
}
