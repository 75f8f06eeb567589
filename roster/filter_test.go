// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"testing"

	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/spatial"
	"github.com/stretchr/testify/assert"
)

func TestEmployeeFilter(t *testing.T) {
	at := &spatial.Coordinate{Lat: 52.5, Lon: 13.4}

	staff := []Employee{
		{ID: "1", Name: "Jürgen Müller", Team: "Platform", Department: "Engineering", AssignedOffice: "Berlin Office", Coords: at, GeocodeStatus: geocode.StatusSuccess},
		{ID: "2", Name: "Anna Schmidt", Team: "QA", Department: "Engineering", AssignedOffice: "Munich Office", Coords: at, GeocodeStatus: geocode.StatusSuccess},
		{ID: "3", Name: "Ben Weber", Team: "Platform", Department: "Product", Coords: at, GeocodeStatus: geocode.StatusSuccess},
		{ID: "4", Name: "Lena Koch", Team: "Platform", GeocodeStatus: geocode.StatusFailed},
		{ID: "5", Name: "Tim Wolf", Team: "Platform", GeocodeStatus: geocode.StatusPending},
	}

	tests := []struct {
		name   string
		filter EmployeeFilter
		want   []string
	}{
		{name: "no criteria keeps geocoded only", want: []string{"1", "2", "3"}},
		{name: "team", filter: EmployeeFilter{Team: "Platform"}, want: []string{"1", "3"}},
		{name: "department", filter: EmployeeFilter{Department: "Engineering"}, want: []string{"1", "2"}},
		{name: "office", filter: EmployeeFilter{Office: "Munich Office"}, want: []string{"2"}},
		{name: "search case-insensitive", filter: EmployeeFilter{Search: "SCHMIDT"}, want: []string{"2"}},
		{name: "search without umlaut", filter: EmployeeFilter{Search: "muller"}, want: []string{"1"}},
		{name: "search transliterated", filter: EmployeeFilter{Search: "Mueller"}, want: []string{"1"}},
		{name: "combined", filter: EmployeeFilter{Team: "Platform", Department: "Product"}, want: []string{"3"}},
		{name: "no match", filter: EmployeeFilter{Team: "Security"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Filter(staff)))
		})
	}
}

func TestDistinctValues(t *testing.T) {
	staff := []Employee{
		{Team: "QA", Department: "Engineering", AssignedOffice: "Berlin Office"},
		{Team: "Data", Department: "", AssignedOffice: ""},
		{Team: "QA", Department: "Product", AssignedOffice: "Berlin Office"},
	}

	assert.Equal(t, []string{"Data", "QA"}, Teams(staff))
	assert.Equal(t, []string{"Engineering", "Product"}, Departments(staff))
	assert.Equal(t, []string{"Berlin Office"}, Offices(staff))
	assert.Equal(t, []string{}, Teams(nil))
}

func TestSummarize(t *testing.T) {
	offices := []Office{
		{GeocodeStatus: geocode.StatusSuccess},
		{GeocodeStatus: geocode.StatusFailed},
	}
	staff := []Employee{
		{Team: "QA", GeocodeStatus: geocode.StatusSuccess, GeocodeAccuracy: geocode.AccuracyAddress},
		{Team: "QA", GeocodeStatus: geocode.StatusSuccess, GeocodeAccuracy: geocode.AccuracyPostcodeCentroid},
		{Team: "Data", GeocodeStatus: geocode.StatusPending},
	}

	got := Summarize(offices, staff)
	assert.Equal(t, StatusCounts{Total: 2, Success: 1, Failed: 1}, got.Offices)
	assert.Equal(t, StatusCounts{Total: 3, Success: 2, Pending: 1}, got.Employees)
	assert.Equal(t, 1, got.AddressAccuracy)
	assert.Equal(t, 2, got.Teams)
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "Hauptstr. 1, 10115 Berlin", FormatAddress("Hauptstr. 1", "10115", "Berlin"))
	assert.Equal(t, "10115 Berlin", FormatAddress("", "10115", "Berlin"))
	assert.Equal(t, "Hauptstr. 1, 10115", FormatAddress("Hauptstr. 1", "10115", ""))
	assert.Equal(t, "Hauptstr. 1", FormatAddress("Hauptstr. 1", "", ""))
}
