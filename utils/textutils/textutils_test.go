// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerAsciiFolding(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello world"},
		{"  Spaces  ", "spaces"},
		{"Thiruvallikkēṇi", "thiruvallikkeni"},
		{"Tirukkōvalūr", "tirukkovalur"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, LowerASCIIFolding(tc.input))
		})
	}
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "thiru vinnagar", FoldKey("  Thiru   Viṇṇagar "))
	assert.Equal(t, FoldKey("Arangam"), FoldKey("arangam"))
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{12, "12"},
		{123, "123"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatInt(tc.input))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", FormatPercent(0, 0))
	assert.Equal(t, "50.0%", FormatPercent(1, 2))
	assert.Equal(t, "98.1%", FormatPercent(104, 106))
}
