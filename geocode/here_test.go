// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHEREGeocode(t *testing.T) {
	var got url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/geocode", r.URL.Path)
		got = r.URL.Query()
		_, _ = io.WriteString(w, `{
		  "items": [
		    {
		      "title": "Srirangam, Tiruchirappalli, Tamil Nadu, India",
		      "id": "here:cm:namedplace:26377842",
		      "position": {"lat": 10.86, "lng": 78.69},
		      "address": {"label": "Srirangam, Tiruchirappalli, Tamil Nadu, India"},
		      "scoring": {"queryScore": 0.87}
		    }
		  ]
		}`)
	}))
	defer srv.Close()

	h := NewHERE(HEREConfig{APIKey: "hk", BaseURL: srv.URL})

	res, err := h.Geocode(context.Background(), "Srirangam Ranganathaswamy Temple")
	require.NoError(t, err)

	assert.Equal(t, "Srirangam Ranganathaswamy Temple", got.Get("q"))
	assert.Equal(t, "5", got.Get("limit"))
	assert.Equal(t, "countryCode:IND", got.Get("in"))
	assert.Equal(t, "area,city,place", got.Get("types"))
	assert.Equal(t, "hk", got.Get("apikey"))

	assert.InDelta(t, 10.86, res.Lat, 1e-9)
	assert.InDelta(t, 78.69, res.Lng, 1e-9)
	assert.InDelta(t, 0.87, res.Confidence, 1e-9)
	assert.Equal(t, "Srirangam, Tiruchirappalli, Tamil Nadu, India", res.Name)
	assert.Equal(t, "here:cm:namedplace:26377842", res.PlaceID)
}

func TestHERECountryOverride(t *testing.T) {
	var in string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in = r.URL.Query().Get("in")
		_, _ = io.WriteString(w, `{"items":[{"position":{"lat":27.7,"lng":85.3}}]}`)
	}))
	defer srv.Close()

	h := NewHERE(HEREConfig{APIKey: "hk", BaseURL: srv.URL, CountryCode: "NPL"})

	_, err := h.Geocode(context.Background(), "Muktinath")
	require.NoError(t, err)
	assert.Equal(t, "countryCode:NPL", in)
}

func TestHEREFailures(t *testing.T) {
	fastBackoff(t)

	tests := []struct {
		name     string
		status   int
		body     string
		wantType ErrorType
	}{
		{"no items", http.StatusOK, `{"items":[]}`, ErrorTypeNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Unauthorized","error_description":"apiKey invalid"}`, ErrorTypeAuth},
		{"bad request", http.StatusBadRequest, `{"title":"Illegal input"}`, ErrorTypeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			h := NewHERE(HEREConfig{APIKey: "hk", BaseURL: srv.URL})

			_, err := h.Geocode(context.Background(), "Muktinath")

			var geoErr *GeocodingError
			require.ErrorAs(t, err, &geoErr)
			assert.Equal(t, tt.wantType, geoErr.Type)
		})
	}
}

func TestHEREMissingKey(t *testing.T) {
	_, err := NewHERE(HEREConfig{}).Geocode(context.Background(), "Muktinath")
	assert.True(t, IsAuthError(err))
}

func TestChainNames(t *testing.T) {
	c := Chain{
		{Name: "Google", Geocoder: NewGooglePlaces(GoogleConfig{})},
		{Name: "HERE", Geocoder: NewHERE(HEREConfig{})},
	}

	assert.Equal(t, "Google + HERE", c.Names())
	assert.Empty(t, Chain{}.Names())
}
