// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hwto/hwto/spatial"
)

const geoapifyEndpoint = "https://api.geoapify.com/v1/geocode/search"

// GeoapifyGeocoder uses the Geoapify search API restricted to Germany. The free
// tier allows 5 requests per second.
type GeoapifyGeocoder struct {
	Endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewGeoapifyGeocoder creates a Geoapify geocoder. A nil client selects a
// default one with a 10s timeout.
func NewGeoapifyGeocoder(apiKey string, client *http.Client) *GeoapifyGeocoder {
	return &GeoapifyGeocoder{
		Endpoint:   geoapifyEndpoint,
		apiKey:     apiKey,
		httpClient: defaultHTTPClient(client),
	}
}

type geoapifyResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Formatted  string  `json:"formatted"`
			ResultType string  `json:"result_type"`
			Rank       struct {
				Confidence float64 `json:"confidence"`
			} `json:"rank"`
		} `json:"properties"`
	} `json:"features"`
}

// Name implements Remote.
func (g *GeoapifyGeocoder) Name() string {
	return "geoapify"
}

// Geocode implements Remote.
func (g *GeoapifyGeocoder) Geocode(ctx context.Context, address string) (*RemoteResult, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("text", address)
	params.Set("filter", "countrycode:de")
	params.Set("limit", "1")
	params.Set("apiKey", g.apiKey)

	resp, err := get(ctx, g.httpClient, g.Endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var gaResp geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&gaResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(gaResp.Features) == 0 {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "No results found for address"}
	}

	feature := gaResp.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, &GeocodingError{Type: ErrorTypeUnknown, Message: "malformed feature geometry"}
	}

	coords := spatial.Coordinate{Lat: feature.Geometry.Coordinates[1], Lon: feature.Geometry.Coordinates[0]}
	if err := coords.Validate(); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeUnknown, Message: "invalid coordinates in response", Err: err}
	}

	confidence := "low"

	switch {
	case feature.Properties.Rank.Confidence >= 0.9:
		confidence = "high"
	case feature.Properties.Rank.Confidence >= 0.5:
		confidence = "medium"
	}

	return &RemoteResult{
		Coords:      coords,
		Confidence:  confidence,
		Provider:    g.Name(),
		DisplayName: feature.Properties.Formatted,
	}, nil
}
