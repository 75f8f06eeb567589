// Copyright 2025 The HWTO Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Circuity factors by straight-line distance band. Urban trips detour more than
// regional ones, and long trips are mostly Autobahn.
const (
	circuityShort  = 1.4  // < 20 km
	circuityMedium = 1.35 // 20-100 km
	circuityLong   = 1.25 // > 100 km
)

// NoDistance is rendered when a distance cannot be computed.
const NoDistance = "—"

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// CalculateDistance returns the haversine distance between two points in kilometers.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// CircuityFactor returns the multiplier converting a straight-line distance into
// an estimated road distance.
func CircuityFactor(straightLineKm float64) float64 {
	switch {
	case straightLineKm < 20:
		return circuityShort
	case straightLineKm <= 100:
		return circuityMedium
	default:
		return circuityLong
	}
}

// EstimateRoadDistance applies the circuity factor to a straight-line distance.
func EstimateRoadDistance(straightLineKm float64) float64 {
	return straightLineKm * CircuityFactor(straightLineKm)
}

// FormatDistance renders km for display. A nil distance renders as NoDistance.
// Road estimates are rounded to a precision matching their magnitude and
// prefixed with "~".
func FormatDistance(km *float64, useRoadEstimate bool) string {
	if km == nil {
		return NoDistance
	}

	if !useRoadEstimate {
		if *km < 1 {
			return fmt.Sprintf("%d m", int(math.Round(*km*1000)))
		}

		return fmt.Sprintf("%.1f km", *km)
	}

	road := EstimateRoadDistance(*km)

	var rounded float64

	switch {
	case road < 10:
		rounded = math.Max(1, math.Round(road))
	case road < 100:
		rounded = math.Round(road/5) * 5
	default:
		rounded = math.Round(road/10) * 10
	}

	return fmt.Sprintf("~%d km", int(rounded))
}

// Km is a convenience for building the optional argument of FormatDistance.
func Km(v float64) *float64 {
	return &v
}
