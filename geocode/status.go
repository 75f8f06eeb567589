// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves postcodes and addresses to coordinates. The local
// geocoder is an offline postcode table lookup; remote geocoders call external
// HTTP services for address-level accuracy.
package geocode

import "fmt"

// Status is the geocoding state of a stored record.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}

	return false
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown geocode status %q", s)
	}

	return st, nil
}

// Accuracy records how precise a coordinate is.
type Accuracy string

const (
	AccuracyPostcodeCentroid Accuracy = "postcode-centroid"
	AccuracyAddress          Accuracy = "address"
)
