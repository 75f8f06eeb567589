// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hwto/hwto/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	berlin    = &spatial.Coordinate{Lat: 52.52, Lon: 13.405}
	frankfurt = &spatial.Coordinate{Lat: 50.1109, Lon: 8.6821}
	potsdam   = &spatial.Coordinate{Lat: 52.3906, Lon: 13.0645}
)

func pairingOffices() []Office {
	return []Office{
		office("o-fra", "Frankfurt HQ", frankfurt),
		office("o-ber", "Berlin Office", berlin),
		office("o-nowhere", "Remote Office", nil),
	}
}

func TestPairingsNearest(t *testing.T) {
	e := employee("e1", "Anna", potsdam)

	got := Pairings([]Employee{e}, pairingOffices(), false)
	require.Len(t, got, 1)

	p := got[0]
	require.NotNil(t, p.Office)
	assert.Equal(t, "Berlin Office", p.Office.Name)
	assert.False(t, p.Assigned)
	require.NotNil(t, p.StraightKm)
	assert.InDelta(t, 27, *p.StraightKm, 2)
	assert.GreaterOrEqual(t, *p.RoadKm, *p.StraightKm)
	assert.Equal(t, spatial.FormatDistance(p.StraightKm, false), p.Distance)
}

func TestPairingsAssigned(t *testing.T) {
	e := employee("e1", "Anna", potsdam)
	e.AssignedOffice = " frankfurt hq "

	p := Pairings([]Employee{e}, pairingOffices(), true)[0]
	assert.True(t, p.Assigned)
	assert.Equal(t, "Frankfurt HQ", p.Office.Name)
	assert.True(t, strings.HasPrefix(p.Distance, "~"), p.Distance)
	assert.Greater(t, *p.StraightKm, 400.0)
}

func TestPairingsUnresolvedOffice(t *testing.T) {
	e := employee("e1", "Anna", potsdam)
	e.AssignedOffice = "Hamburg Office"

	p := Pairings([]Employee{e}, pairingOffices(), false)[0]
	assert.Equal(t, "Hamburg Office", p.UnresolvedOffice)
	assert.False(t, p.Assigned)
	assert.Equal(t, "Berlin Office", p.Office.Name)
}

func TestPairingsAssignedWithoutCoordinates(t *testing.T) {
	e := employee("e1", "Anna", potsdam)
	e.AssignedOffice = "Remote Office"

	p := Pairings([]Employee{e}, pairingOffices(), false)[0]
	assert.Equal(t, "Berlin Office", p.Office.Name, "falls back to the nearest geocoded office")
	assert.False(t, p.Assigned)
	assert.Equal(t, "Remote Office", p.UnresolvedOffice)
	require.NotNil(t, p.StraightKm)
}

func TestPairingsWithoutCoordinates(t *testing.T) {
	e := employee("e1", "Anna", nil)
	e.AssignedOffice = "Berlin Office"

	p := Pairings([]Employee{e}, pairingOffices(), true)[0]
	assert.Nil(t, p.StraightKm)
	assert.Nil(t, p.RoadKm)
	assert.Equal(t, spatial.NoDistance, p.Distance)
	assert.Equal(t, "Berlin Office", p.Office.Name)

	p = Pairings([]Employee{employee("e2", "Ben", potsdam)}, nil, false)[0]
	assert.Nil(t, p.Office)
	assert.Equal(t, spatial.NoDistance, p.Distance)
}

func TestNearestOffice(t *testing.T) {
	o, km, ok := NearestOffice(*frankfurt, pairingOffices())
	require.True(t, ok)
	assert.Equal(t, "o-fra", o.ID)
	assert.InDelta(t, 0, km, 1e-9)

	_, _, ok = NearestOffice(*frankfurt, []Office{office("x", "X", nil)})
	assert.False(t, ok)
}

func TestWritePairingsXLSX(t *testing.T) {
	staff := []Employee{employee("e1", "Anna", potsdam), employee("e2", "Ben", nil)}
	pairings := Pairings(staff, pairingOffices(), true)

	var buf bytes.Buffer
	require.NoError(t, WritePairingsXLSX(&buf, pairings, spatial.Driving))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Distances")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee", rows[0][0])
	assert.Equal(t, "Anna", rows[1][0])
	assert.Equal(t, "Berlin Office", rows[1][5])
	assert.Contains(t, rows[1][10], "https://www.google.com/maps/dir/?")
	assert.Equal(t, "Ben", rows[2][0])
	assert.Contains(t, rows[2], spatial.NoDistance)
}

func TestNearestPairingsIgnoresAssignment(t *testing.T) {
	e := employee("e1", "Anna", potsdam)
	e.AssignedOffice = "Frankfurt HQ"

	p := NearestPairings([]Employee{e}, pairingOffices(), false)[0]
	assert.Equal(t, "Berlin Office", p.Office.Name)
	assert.False(t, p.Assigned)
	assert.Empty(t, p.UnresolvedOffice)
}
