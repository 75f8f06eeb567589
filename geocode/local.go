// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"github.com/hwto/hwto/gazetteer"
	"github.com/hwto/hwto/spatial"
)

// LocalResult is the outcome of a postcode lookup. A miss leaves Coords and
// City nil.
type LocalResult struct {
	Postcode string              `json:"postcode"`
	Coords   *spatial.Coordinate `json:"coords,omitempty"`
	City     *string             `json:"city,omitempty"`
	Accuracy Accuracy            `json:"accuracy"`
}

// Found reports whether the postcode resolved.
func (r LocalResult) Found() bool {
	return r.Coords != nil
}

// Local geocodes postcodes against a gazetteer. It performs no I/O.
type Local struct {
	gaz *gazetteer.Gazetteer
}

// NewLocal returns a geocoder over gaz.
func NewLocal(gaz *gazetteer.Gazetteer) *Local {
	return &Local{gaz: gaz}
}

// NewDefaultLocal returns a geocoder over the bundled dataset.
func NewDefaultLocal() (*Local, error) {
	gaz, err := gazetteer.Default()
	if err != nil {
		return nil, err
	}

	return NewLocal(gaz), nil
}

// Gazetteer returns the underlying table.
func (l *Local) Gazetteer() *gazetteer.Gazetteer {
	return l.gaz
}

// GeocodeByPostcode returns the centroid of postcode's area.
func (l *Local) GeocodeByPostcode(postcode string) LocalResult {
	res := LocalResult{
		Postcode: gazetteer.Normalize(postcode),
		Accuracy: AccuracyPostcodeCentroid,
	}

	entry, ok := l.gaz.Lookup(res.Postcode)
	if !ok {
		return res
	}

	coords := entry.Coords
	city := entry.Place
	res.Coords = &coords
	res.City = &city

	return res
}

// IsValidPostcode reports whether postcode is present in the table.
func (l *Local) IsValidPostcode(postcode string) bool {
	_, ok := l.gaz.Lookup(postcode)

	return ok
}

// BatchGeocodeByPostcode geocodes each postcode, preserving order.
func (l *Local) BatchGeocodeByPostcode(postcodes []string) []LocalResult {
	results := make([]LocalResult, len(postcodes))
	for i, p := range postcodes {
		results[i] = l.GeocodeByPostcode(p)
	}

	return results
}
