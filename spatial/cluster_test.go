// Copyright 2025 The HWTO Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell(t *testing.T) {
	a, err := Cell(berlin, 7)
	require.NoError(t, err)
	assert.Len(t, a, 15)

	b, err := Cell(Coordinate{Lat: berlin.Lat + 0.0001, Lon: berlin.Lon}, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Cell(munich, 7)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = Cell(berlin, 16)
	assert.Error(t, err)
}

func TestCluster(t *testing.T) {
	points := []Coordinate{
		berlin,
		munich,
		{Lat: 52.39, Lon: 13.06}, // Potsdam, ~27 km from Berlin
		{Lat: 52.30, Lon: 12.75}, // ~25 km further west, chained through Potsdam
		{Lat: 48.40, Lon: 11.75}, // Freising, ~32 km from Munich
	}

	assert.Equal(t, [][]int{{0, 2, 3}, {1}, {4}}, Cluster(points, 30))
	assert.Equal(t, [][]int{{0, 2, 3}, {1, 4}}, Cluster(points, 35))
	assert.Empty(t, Cluster(nil, 10))
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid([]Coordinate{{Lat: 50, Lon: 8}, {Lat: 52, Lon: 10}})
	require.True(t, ok)
	assert.Equal(t, Coordinate{Lat: 51, Lon: 9}, c)

	_, ok = Centroid(nil)
	assert.False(t, ok)
}

func TestDirectionsURL(t *testing.T) {
	got := DirectionsURL(berlin, munich, "")
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=48.1351%2C11.582&origin=52.52%2C13.405&travelmode=driving", got)

	assert.Contains(t, DirectionsURL(berlin, munich, Transit), "travelmode=transit")
}

func TestParseTravelMode(t *testing.T) {
	m, err := ParseTravelMode("")
	require.NoError(t, err)
	assert.Equal(t, Driving, m)

	m, err = ParseTravelMode("walking")
	require.NoError(t, err)
	assert.Equal(t, Walking, m)

	_, err = ParseTravelMode("flying")
	assert.Error(t, err)
}
