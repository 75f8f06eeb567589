// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"regexp"
	"strings"
)

var postcodePattern = regexp.MustCompile(`\b\d{5}\b`)

// ExtractPostcode returns the dedicated postcode column with all whitespace
// removed, or else the first standalone 5-digit token of the address column.
func ExtractPostcode(row Row) string {
	if pc := strings.Join(strings.Fields(row.Fields[ColPostcode]), ""); pc != "" {
		return pc
	}

	return postcodePattern.FindString(row.Get(ColAddress))
}

// ExtractStreet returns the dedicated street column, or else the part of the
// address before its postcode. Without a postcode the first comma-separated
// part of the address is used.
func ExtractStreet(row Row) string {
	if street := row.Get(ColStreet); street != "" {
		return street
	}

	address := row.Get(ColAddress)
	if address == "" {
		return ""
	}

	if loc := postcodePattern.FindStringIndex(address); loc != nil {
		return strings.TrimRight(address[:loc[0]], ", \t")
	}

	street, _, _ := strings.Cut(address, ",")

	return strings.TrimSpace(street)
}

// ExtractCity returns the dedicated city column, or else the text following
// the postcode in the address up to the next comma.
func ExtractCity(row Row) string {
	if city := row.Get(ColCity); city != "" {
		return city
	}

	address := row.Get(ColAddress)

	loc := postcodePattern.FindStringIndex(address)
	if loc == nil {
		return ""
	}

	city, _, _ := strings.Cut(address[loc[1]:], ",")

	return strings.TrimSpace(city)
}
