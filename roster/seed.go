// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"math/rand/v2"
	"strconv"

	"github.com/hwto/hwto/gazetteer"
	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/spatial"
)

const (
	seedEmployeeCount = 45
	seedRandom        = 12345
	// seed employees live within this distance of their office
	seedRadiusKm = 60
)

var (
	seedTeams       = []string{"Platform", "Frontend", "Backend", "Mobile", "DevOps", "QA", "Data", "Security"}
	seedDepartments = []string{"Engineering", "Product"}
	seedRoles       = []string{"Developer", "Senior Developer", "Tech Lead", "Product Manager", "Designer"}
	seedFirstNames  = []string{
		"Anna", "Ben", "Clara", "David", "Emma", "Felix", "Greta", "Hannah", "Jonas", "Katharina",
		"Leon", "Lena", "Lukas", "Marie", "Maximilian", "Mia", "Niklas", "Paul", "Sophie", "Tim",
	}
	seedLastNames = []string{
		"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schulz", "Hoffmann",
		"Koch", "Richter", "Klein", "Wolf", "Schröder", "Neumann", "Schwarz", "Braun", "Zimmermann", "Krüger",
	}
	seedStreets = []string{
		"Hauptstraße", "Schulstraße", "Gartenstraße", "Bahnhofstraße", "Dorfstraße",
		"Bergstraße", "Lindenstraße", "Kirchstraße", "Waldstraße", "Ringstraße",
	}
)

// SeedOffices returns the demo offices in five German cities.
func SeedOffices(newID func() string) []Office {
	office := func(name, postcode, street, city string, lat, lon float64) Office {
		return Office{
			ID:            newID(),
			Name:          name,
			Postcode:      postcode,
			Street:        street,
			City:          city,
			Coords:        &spatial.Coordinate{Lat: lat, Lon: lon},
			GeocodeStatus: geocode.StatusSuccess,
		}
	}

	return []Office{
		office("Frankfurt HQ", "60311", "Neue Mainzer Str. 52-58", "Frankfurt am Main", 50.1109, 8.6821),
		office("Berlin Office", "10117", "Unter den Linden 21", "Berlin", 52.52, 13.405),
		office("Munich Office", "80539", "Maximilianstrasse 35", "Muenchen", 48.1351, 11.582),
		office("Hamburg Office", "20354", "Jungfernstieg 7", "Hamburg", 53.5511, 9.9937),
		office("Duesseldorf Office", "40212", "Koenigsallee 60", "Duesseldorf", 51.2277, 6.7735),
	}
}

// SeedEmployees returns a reproducible set of demo employees living near the
// given offices. Each one gets a real postcode from gaz and its centroid.
func SeedEmployees(gaz *gazetteer.Gazetteer, offices []Office, newID func() string) []Employee {
	if len(offices) == 0 {
		return nil
	}

	rng := rand.New(rand.NewPCG(seedRandom, seedRandom))

	nearby := make([][]gazetteer.Entry, len(offices))

	for i, o := range offices {
		if o.Coords == nil {
			continue
		}

		for _, code := range gaz.Postcodes() {
			entry, _ := gaz.Lookup(code)
			if o.Coords.DistanceTo(entry.Coords) <= seedRadiusKm {
				nearby[i] = append(nearby[i], entry)
			}
		}
	}

	pick := func(values []string) string {
		return values[rng.IntN(len(values))]
	}

	employees := make([]Employee, 0, seedEmployeeCount)

	for len(employees) < seedEmployeeCount {
		i := rng.IntN(len(offices))
		if len(nearby[i]) == 0 {
			if !anyNearby(nearby) {
				break
			}

			continue
		}

		entry := nearby[i][rng.IntN(len(nearby[i]))]
		coords := entry.Coords

		employees = append(employees, Employee{
			ID:              newID(),
			Name:            pick(seedFirstNames) + " " + pick(seedLastNames),
			Postcode:        entry.Postcode,
			Street:          pick(seedStreets) + " " + strconv.Itoa(1+rng.IntN(120)),
			City:            entry.Place,
			Team:            pick(seedTeams),
			Department:      pick(seedDepartments),
			Role:            pick(seedRoles),
			AssignedOffice:  offices[i].Name,
			Coords:          &coords,
			GeocodeAccuracy: geocode.AccuracyPostcodeCentroid,
			GeocodeStatus:   geocode.StatusSuccess,
		})
	}

	return employees
}

func anyNearby(nearby [][]gazetteer.Entry) bool {
	for _, n := range nearby {
		if len(n) > 0 {
			return true
		}
	}

	return false
}
