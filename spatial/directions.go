// Copyright 2025 The HWTO Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"net/url"
)

// TravelMode selects the routing profile of a directions link.
type TravelMode string

const (
	Driving   TravelMode = "driving"
	Transit   TravelMode = "transit"
	Walking   TravelMode = "walking"
	Bicycling TravelMode = "bicycling"
)

// DirectionsURL builds a Google Maps directions link between two coordinates.
// An empty mode defaults to Driving.
func DirectionsURL(origin, destination Coordinate, mode TravelMode) string {
	if mode == "" {
		mode = Driving
	}

	params := url.Values{}
	params.Set("api", "1")
	params.Set("origin", fmt.Sprintf("%g,%g", origin.Lat, origin.Lon))
	params.Set("destination", fmt.Sprintf("%g,%g", destination.Lat, destination.Lon))
	params.Set("travelmode", string(mode))

	return "https://www.google.com/maps/dir/?" + params.Encode()
}

// ParseTravelMode validates a travel mode name. Empty selects Driving.
func ParseTravelMode(s string) (TravelMode, error) {
	switch m := TravelMode(s); m {
	case "":
		return Driving, nil
	case Driving, Transit, Walking, Bicycling:
		return m, nil
	default:
		return "", fmt.Errorf("unknown travel mode %q (want %s, %s, %s or %s)", s, Driving, Transit, Walking, Bicycling)
	}
}
