// Copyright 2025 The HWTO Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import "fmt"

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate lies within the WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90 (got: %f)", c.Lat)
	}

	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180 (got: %f)", c.Lon)
	}

	return nil
}

// InGermany reports whether the coordinate falls inside a generous bounding
// box around Germany. Remote results outside it are treated as suspicious.
func (c Coordinate) InGermany() bool {
	const (
		minLat = 47.0
		maxLat = 55.3
		minLon = 5.5
		maxLon = 15.5
	)

	return c.Lat >= minLat && c.Lat <= maxLat && c.Lon >= minLon && c.Lon <= maxLon
}

// DistanceTo returns the great-circle distance to other in kilometers.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return CalculateDistance(c.Lat, c.Lon, other.Lat, other.Lon)
}
