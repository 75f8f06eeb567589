// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package roster holds the office and employee records, their persisted
// stores, and the read-only views computed over them.
package roster

import (
	"strings"

	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/spatial"
)

// GeocodeUpdate is the only mutation allowed on a stored record.
type GeocodeUpdate struct {
	Coords   *spatial.Coordinate
	Status   geocode.Status
	Accuracy geocode.Accuracy // ignored for offices
}

// Record is implemented by the types a Store can hold.
type Record[T any] interface {
	RecordID() string
	WithGeocode(u GeocodeUpdate) T
}

// Office is a physical workplace.
type Office struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Postcode      string              `json:"postcode"`
	Street        string              `json:"street,omitempty"`
	City          string              `json:"city,omitempty"`
	Coords        *spatial.Coordinate `json:"coords,omitempty"`
	GeocodeStatus geocode.Status      `json:"geocodeStatus"`
}

// RecordID implements Record.
func (o Office) RecordID() string { return o.ID }

// WithGeocode implements Record.
func (o Office) WithGeocode(u GeocodeUpdate) Office {
	o.Coords = copyCoords(u.Coords)
	o.GeocodeStatus = u.Status

	return o
}

// Address renders the office location as a single search string.
func (o Office) Address() string {
	return FormatAddress(o.Street, o.Postcode, o.City)
}

// Employee is a person assigned to a team and, optionally, an office.
type Employee struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Postcode        string              `json:"postcode"`
	Street          string              `json:"street,omitempty"`
	City            string              `json:"city,omitempty"`
	Team            string              `json:"team"`
	Department      string              `json:"department,omitempty"`
	Role            string              `json:"role,omitempty"`
	AssignedOffice  string              `json:"assignedOffice,omitempty"`
	Coords          *spatial.Coordinate `json:"coords,omitempty"`
	GeocodeAccuracy geocode.Accuracy    `json:"geocodeAccuracy,omitempty"`
	GeocodeStatus   geocode.Status      `json:"geocodeStatus"`
}

// RecordID implements Record.
func (e Employee) RecordID() string { return e.ID }

// WithGeocode implements Record.
func (e Employee) WithGeocode(u GeocodeUpdate) Employee {
	e.Coords = copyCoords(u.Coords)
	e.GeocodeStatus = u.Status

	if u.Accuracy != "" {
		e.GeocodeAccuracy = u.Accuracy
	}

	return e
}

// Address renders the employee location as a single search string.
func (e Employee) Address() string {
	return FormatAddress(e.Street, e.Postcode, e.City)
}

// FormatAddress joins address parts as "street, postcode city", skipping
// empty parts.
func FormatAddress(street, postcode, city string) string {
	locality := strings.TrimSpace(strings.TrimSpace(postcode) + " " + strings.TrimSpace(city))

	switch {
	case street == "":
		return locality
	case locality == "":
		return strings.TrimSpace(street)
	default:
		return strings.TrimSpace(street) + ", " + locality
	}
}

func copyCoords(c *spatial.Coordinate) *spatial.Coordinate {
	if c == nil {
		return nil
	}

	v := *c

	return &v
}
