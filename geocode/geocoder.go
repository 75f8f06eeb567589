// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/hwto/hwto/spatial"
)

const defaultTimeout = 10 * time.Second

// RemoteResult is an address-level match from a remote provider.
type RemoteResult struct {
	Coords      spatial.Coordinate
	Confidence  string // high, medium, low
	Provider    string
	DisplayName string
}

// Remote is an address geocoding service reached over the network.
type Remote interface {
	Name() string
	Geocode(ctx context.Context, address string) (*RemoteResult, error)
}

func defaultHTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}

	return &http.Client{Timeout: defaultTimeout}
}

// get issues a GET and classifies transport and status failures.
func get(ctx context.Context, client *http.Client, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, ClassifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()

		return nil, ClassifyHTTPError(resp.StatusCode, resp.Status)
	}

	return resp, nil
}
