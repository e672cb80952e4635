// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves a place name to coordinates through external
// providers.
package geocode

import (
	"context"
	"strings"
)

// Result is a successful geocoding answer.
type Result struct {
	Lat        float64
	Lng        float64
	Name       string  // name of the matched place as reported by the provider
	PlaceID    string  // provider specific identifier, if any
	Address    string  // formatted address, if any
	Confidence float64 // provider score in [0,1]; 0 when the provider has none
}

// Geocoder resolves a free-form query. Any error is a failure of this
// provider for this query only.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// GeocoderFunc adapts a function to the Geocoder interface.
type GeocoderFunc func(ctx context.Context, query string) (*Result, error)

// Geocode implements Geocoder.
func (f GeocoderFunc) Geocode(ctx context.Context, query string) (*Result, error) {
	return f(ctx, query)
}

// Link is a named provider in a Chain. The name tags change log entries.
type Link struct {
	Name     string
	Geocoder Geocoder
}

// Chain is an ordered list of providers, tried first to last.
type Chain []Link

// Names returns the link names joined with " + ", e.g. "Google + HERE".
func (c Chain) Names() string {
	names := make([]string, len(c))
	for i, l := range c {
		names[i] = l.Name
	}

	return strings.Join(names, " + ")
}
