// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleBaseURL is the Google Maps Platform endpoint root.
const DefaultGoogleBaseURL = "https://maps.googleapis.com"

// GoogleConfig configures a GooglePlaces client.
type GoogleConfig struct {
	APIKey     string
	BaseURL    string       // defaults to DefaultGoogleBaseURL
	HTTPClient *http.Client // defaults to a client with a 10s timeout
}

// GooglePlaces uses the Google Places text search API.
type GooglePlaces struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGooglePlaces creates a new Google Places geocoder.
func NewGooglePlaces(cfg GoogleConfig) *GooglePlaces {
	g := &GooglePlaces{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
	}

	if g.baseURL == "" {
		g.baseURL = DefaultGoogleBaseURL
	}

	if g.httpClient == nil {
		g.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return g
}

type placesResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Name             string  `json:"name"`
		PlaceID          string  `json:"place_id"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, OVER_QUERY_LIMIT, REQUEST_DENIED, INVALID_REQUEST
	ErrorMessage string `json:"error_message"`
}

// Geocode implements Geocoder.
func (g *GooglePlaces) Geocode(ctx context.Context, query string) (*Result, error) {
	if g.apiKey == "" {
		return nil, &GeocodingError{Type: ErrorTypeAuth, Message: "google api key not configured"}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", g.apiKey)

	reqURL := g.baseURL + "/maps/api/place/textsearch/json?" + params.Encode()

	var resp placesResponse
	if err := getJSON(ctx, g.httpClient, reqURL, &resp); err != nil {
		return nil, err
	}

	if err := placesStatusError(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "No results found"}
	}

	best := resp.Results[0]

	return &Result{
		Lat:     best.Geometry.Location.Lat,
		Lng:     best.Geometry.Location.Lng,
		Name:    best.Name,
		PlaceID: best.PlaceID,
		Address: best.FormattedAddress,
	}, nil
}

func placesStatusError(status, message string) error {
	var t ErrorType

	switch status {
	case "OK", "":
		return nil
	case "ZERO_RESULTS":
		return &GeocodingError{Type: ErrorTypeNotFound, Message: "No results found"}
	case "OVER_QUERY_LIMIT":
		t = ErrorTypeQuotaExceeded
	case "REQUEST_DENIED":
		t = ErrorTypeAuth
	case "INVALID_REQUEST":
		t = ErrorTypeInvalidRequest
	default:
		t = ErrorTypeUnknown
	}

	msg := "google places status: " + status
	if message != "" {
		msg = fmt.Sprintf("%s (%s)", msg, message)
	}

	return &GeocodingError{Type: t, Message: msg}
}
