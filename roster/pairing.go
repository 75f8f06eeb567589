// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"math"
	"strings"

	"github.com/hwto/hwto/spatial"
)

// Pairing is the distance from an employee to their office. The office is
// the assigned one when the name resolves to a geocoded office, otherwise the
// nearest geocoded office. UnresolvedOffice names an assignment that could not
// be used.
type Pairing struct {
	Employee         Employee `json:"employee"`
	Office           *Office  `json:"office,omitempty"`
	Assigned         bool     `json:"assigned"`
	UnresolvedOffice string   `json:"unresolvedOffice,omitempty"`
	StraightKm       *float64 `json:"straightKm,omitempty"`
	RoadKm           *float64 `json:"roadKm,omitempty"`
	Distance         string   `json:"distance"`
}

// FindOffice returns the office named name, ignoring case and surrounding
// whitespace.
func FindOffice(offices []Office, name string) (Office, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Office{}, false
	}

	for _, o := range offices {
		if strings.EqualFold(strings.TrimSpace(o.Name), name) {
			return o, true
		}
	}

	return Office{}, false
}

// NearestOffice returns the geocoded office closest to c and its
// straight-line distance in km.
func NearestOffice(c spatial.Coordinate, offices []Office) (Office, float64, bool) {
	best, bestKm, found := Office{}, math.MaxFloat64, false

	for _, o := range offices {
		if o.Coords == nil {
			continue
		}

		if km := c.DistanceTo(*o.Coords); km < bestKm {
			best, bestKm, found = o, km, true
		}
	}

	return best, bestKm, found
}

// Pairings computes one pairing per employee, in order. Distance is
// formatted as a road estimate when useRoad is set.
func Pairings(employees []Employee, offices []Office, useRoad bool) []Pairing {
	return pair(employees, offices, useRoad, true)
}

// NearestPairings pairs every employee with the nearest geocoded office,
// ignoring assignments.
func NearestPairings(employees []Employee, offices []Office, useRoad bool) []Pairing {
	return pair(employees, offices, useRoad, false)
}

func pair(employees []Employee, offices []Office, useRoad, honorAssignment bool) []Pairing {
	out := make([]Pairing, 0, len(employees))

	for _, e := range employees {
		p := Pairing{Employee: e}

		if honorAssignment {
			if assigned, ok := FindOffice(offices, e.AssignedOffice); ok {
				p.Office = &assigned
				p.Assigned = true
			} else if e.AssignedOffice != "" {
				p.UnresolvedOffice = e.AssignedOffice
			}
		}

		if e.Coords != nil && (p.Office == nil || p.Office.Coords == nil) {
			if nearest, _, ok := NearestOffice(*e.Coords, offices); ok {
				if p.Assigned {
					p.UnresolvedOffice = e.AssignedOffice
				}

				p.Office = &nearest
				p.Assigned = false
			}
		}

		if e.Coords != nil && p.Office != nil && p.Office.Coords != nil {
			km := e.Coords.DistanceTo(*p.Office.Coords)
			road := spatial.EstimateRoadDistance(km)
			p.StraightKm = &km
			p.RoadKm = &road
		}

		p.Distance = spatial.FormatDistance(p.StraightKm, useRoad)
		out = append(out, p)
	}

	return out
}
