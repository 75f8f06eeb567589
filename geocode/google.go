// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hwto/hwto/spatial"
)

const googleMapsEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleMapsGeocoder uses the Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	Endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleMapsGeocoder creates a Google Maps geocoder. A nil client selects
// a default one with a 10s timeout.
func NewGoogleMapsGeocoder(apiKey string, client *http.Client) *GoogleMapsGeocoder {
	return &GoogleMapsGeocoder{
		Endpoint:   googleMapsEndpoint,
		apiKey:     apiKey,
		httpClient: defaultHTTPClient(client),
	}
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

// Name implements Remote.
func (g *GoogleMapsGeocoder) Name() string {
	return "google_maps"
}

// Geocode implements Remote.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*RemoteResult, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	searchQuery := address
	if !strings.Contains(strings.ToLower(address), "germany") &&
		!strings.Contains(strings.ToLower(address), "deutschland") {
		searchQuery = address + ", Germany"
	}

	params := url.Values{}
	params.Set("address", searchQuery)
	params.Set("key", g.apiKey)
	params.Set("region", "de")
	params.Set("components", "country:DE")

	resp, err := get(ctx, g.httpClient, g.Endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	switch gmResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "No results found for address"}
	case "OVER_QUERY_LIMIT":
		return nil, &GeocodingError{Type: ErrorTypeRateLimit, Message: "google maps status: OVER_QUERY_LIMIT"}
	case "REQUEST_DENIED":
		return nil, &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "google maps status: REQUEST_DENIED " + gmResp.ErrorMessage}
	case "INVALID_REQUEST":
		return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "google maps status: INVALID_REQUEST"}
	default:
		return nil, fmt.Errorf("google maps status: %s", gmResp.Status)
	}

	if len(gmResp.Results) == 0 {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "No results found for address"}
	}

	result := gmResp.Results[0]

	confidence := "low"

	switch result.Geometry.LocationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		confidence = "high"
	case "GEOMETRIC_CENTER":
		confidence = "medium"
	}

	return &RemoteResult{
		Coords:      spatial.Coordinate{Lat: result.Geometry.Location.Lat, Lon: result.Geometry.Location.Lng},
		Confidence:  confidence,
		Provider:    g.Name(),
		DisplayName: result.FormattedAddress,
	}, nil
}
