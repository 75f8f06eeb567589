// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package gazetteer

import (
	"math"
	"strings"
	"testing"

	"github.com/hwto/hwto/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)
	assert.Greater(t, g.Len(), 200)

	for _, code := range g.Postcodes() {
		require.Len(t, code, 5, "postcode %q", code)
		e, ok := g.Lookup(code)
		require.True(t, ok)
		assert.True(t, e.Coords.InGermany(), "postcode %s at %v", code, e.Coords)
		assert.NotEmpty(t, e.Place)
	}
}

func TestLookup(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name      string
		postcode  string
		wantOK    bool
		wantPlace string
	}{
		{name: "berlin mitte", postcode: "10115", wantOK: true, wantPlace: "Berlin"},
		{name: "surrounding whitespace", postcode: "  60311 ", wantOK: true, wantPlace: "Frankfurt am Main"},
		{name: "interior whitespace", postcode: "80 539", wantOK: true, wantPlace: "Muenchen"},
		{name: "leading zero", postcode: "01067", wantOK: true, wantPlace: "Dresden"},
		{name: "absent", postcode: "00000"},
		{name: "empty", postcode: ""},
		{name: "too short", postcode: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := g.Lookup(tt.postcode)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPlace, e.Place)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "10115", Normalize(" 10 1 15\t"))
	assert.Equal(t, "", Normalize("   "))
}

func TestRead(t *testing.T) {
	g, err := Read(strings.NewReader("postcode,lat,lon,place\n12345,50.1,8.2,Testort\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())

	e, ok := g.Lookup("12345")
	require.True(t, ok)
	assert.Equal(t, spatial.Coordinate{Lat: 50.1, Lon: 8.2}, e.Coords)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "bad latitude", data: "postcode,lat,lon,place\n12345,x,8.2,A\n"},
		{name: "bad longitude", data: "postcode,lat,lon,place\n12345,50,y,A\n"},
		{name: "missing column", data: "postcode,lat,lon,place\n12345,50,8\n"},
		{name: "duplicate", data: "postcode,lat,lon,place\n12345,50,8,A\n12345,51,9,B\n"},
		{name: "out of range", data: "postcode,lat,lon,place\n12345,95,8,A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestNearest(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	e, dist, ok := g.Nearest(spatial.Coordinate{Lat: 50.1109, Lon: 8.6821})
	require.True(t, ok)
	assert.Equal(t, "60311", e.Postcode)
	assert.InDelta(t, 0, dist, 1e-9)

	e, dist, ok = g.Nearest(spatial.Coordinate{Lat: 52.531, Lon: 13.385})
	require.True(t, ok)
	assert.Equal(t, "10115", e.Postcode)
	assert.Less(t, dist, 1.0)

	// far away from every indexed cell still resolves through the full scan
	e, _, ok = g.Nearest(spatial.Coordinate{Lat: 0, Lon: 0})
	require.True(t, ok)
	assert.NotEmpty(t, e.Postcode)

	_, _, ok = g.Nearest(spatial.Coordinate{Lat: math.NaN(), Lon: 10})
	assert.False(t, ok)

	empty, err := New(nil)
	require.NoError(t, err)
	_, _, ok = empty.Nearest(spatial.Coordinate{Lat: 50, Lon: 8})
	assert.False(t, ok)
}
