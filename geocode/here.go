// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultHEREBaseURL is the HERE geocoding and search endpoint root.
const DefaultHEREBaseURL = "https://geocode.search.hereapi.com"

// HEREConfig configures a HERE client.
type HEREConfig struct {
	APIKey      string
	BaseURL     string       // defaults to DefaultHEREBaseURL
	HTTPClient  *http.Client // defaults to a client with a 10s timeout
	CountryCode string       // ISO 3166 alpha-3 filter, defaults to IND
}

// HERE uses the HERE Geocoding & Search v1 API.
type HERE struct {
	apiKey      string
	baseURL     string
	countryCode string
	httpClient  *http.Client
}

// NewHERE creates a new HERE geocoder.
func NewHERE(cfg HEREConfig) *HERE {
	h := &HERE{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		countryCode: cfg.CountryCode,
		httpClient:  cfg.HTTPClient,
	}

	if h.baseURL == "" {
		h.baseURL = DefaultHEREBaseURL
	}

	if h.countryCode == "" {
		h.countryCode = "IND"
	}

	if h.httpClient == nil {
		h.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return h
}

type hereResponse struct {
	Items []struct {
		Title    string `json:"title"`
		ID       string `json:"id"`
		Position struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
		Address struct {
			Label string `json:"label"`
		} `json:"address"`
		Scoring struct {
			QueryScore float64 `json:"queryScore"`
		} `json:"scoring"`
	} `json:"items"`
}

// Geocode implements Geocoder.
func (h *HERE) Geocode(ctx context.Context, query string) (*Result, error) {
	if h.apiKey == "" {
		return nil, &GeocodingError{Type: ErrorTypeAuth, Message: "here api key not configured"}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "5")
	params.Set("in", "countryCode:"+h.countryCode)
	params.Set("types", "area,city,place")
	params.Set("apikey", h.apiKey)

	reqURL := h.baseURL + "/v1/geocode?" + params.Encode()

	var resp hereResponse
	if err := getJSON(ctx, h.httpClient, reqURL, &resp); err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "No results found"}
	}

	best := resp.Items[0]

	return &Result{
		Lat:        best.Position.Lat,
		Lng:        best.Position.Lng,
		Name:       best.Title,
		PlaceID:    best.ID,
		Address:    best.Address.Label,
		Confidence: best.Scoring.QueryScore,
	}, nil
}
