// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial holds the coordinate type shared by providers and records.
package spatial

import (
	"fmt"
	"math"
)

const earthRadius = 6371e3 // meters

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("lat: %v, lng: %v", p.Lat, p.Lng)
}

// IsZero reports whether both coordinates are zero, which the dataset uses
// for "never geocoded".
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Delta returns the absolute per-axis difference between two points.
func (p Point) Delta(other Point) Point {
	return Point{
		Lat: math.Abs(other.Lat - p.Lat),
		Lng: math.Abs(other.Lng - p.Lng),
	}
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p Point) HaversineDistance(other Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
