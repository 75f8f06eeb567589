// Copyright 2025 The HWTO Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"strconv"

	"github.com/uber/h3-go/v4"
)

// Cell returns the H3 cell containing c at the given resolution (0-15), in
// its canonical hexadecimal form.
func Cell(c Coordinate, res int) (string, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(c.Lat, c.Lon), res)
	if err != nil {
		return "", fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
	}

	return strconv.FormatInt(int64(cell), 16), nil
}

// Cluster groups points whose distance to any member of a group is within
// thresholdKm. It returns the groups as indexes into points, in input order.
func Cluster(points []Coordinate, thresholdKm float64) [][]int {
	clusters := make([][]int, 0, len(points))

	visited := make([]bool, len(points))

	for i := range points {
		if visited[i] {
			continue
		}

		cluster := []int{i}
		visited[i] = true

		// members appended during the scan are compared against later points too
		for k := 0; k < len(cluster); k++ {
			member := points[cluster[k]]

			for j := range points {
				if visited[j] {
					continue
				}

				if member.DistanceTo(points[j]) <= thresholdKm {
					cluster = append(cluster, j)
					visited[j] = true
				}
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}

// Centroid returns the arithmetic mean of points. Adequate for the small
// extents clustered here; it is not a geodesic centroid.
func Centroid(points []Coordinate) (Coordinate, bool) {
	if len(points) == 0 {
		return Coordinate{}, false
	}

	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}

	n := float64(len(points))

	return Coordinate{Lat: lat / n, Lon: lon / n}, true
}
