// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

const maxAttempts = 3

// initialBackoff is doubled after every retried attempt.
var initialBackoff = 200 * time.Millisecond

// getJSON issues a GET to url and decodes the JSON body into out. Rate limit
// and transient failures are retried with exponential backoff.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	backoff := initialBackoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = getOnce(ctx, client, url, out)
		if lastErr == nil || !retryable(lastErr) || attempt == maxAttempts || ctx.Err() != nil {
			return lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()

			return &GeocodingError{Type: ErrorTypeTimeout, Message: "request cancelled", Err: ctx.Err()}
		case <-timer.C:
		}

		backoff *= 2
	}

	return lastErr
}

func getOnce(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "creating request", Err: err}
	}

	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return ClassifyHTTPError(resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GeocodingError{Type: ErrorTypeUnknown, Message: "decoding response", Err: err}
	}

	return nil
}

func classifyTransportError(err error) *GeocodingError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &GeocodingError{Type: ErrorTypeTimeout, Message: "request timed out", Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &GeocodingError{Type: ErrorTypeTimeout, Message: "request cancelled", Err: err}
	}

	return &GeocodingError{Type: ErrorTypeNetworkError, Message: "request failed", Err: err}
}
