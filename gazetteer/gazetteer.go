// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package gazetteer holds the read-only postcode reference table used for
// offline geocoding: 5-digit German postcodes mapped to the approximate
// centroid of their area and a place name.
package gazetteer

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/geo/s2"
	"github.com/hwto/hwto/spatial"
)

//go:embed data/postcodes.csv
var dataFS embed.FS

const embeddedDataset = "data/postcodes.csv"

// s2CellLevel is the granularity of the reverse lookup index. Level 7 cells
// are roughly 60-80km wide, coarse enough that the sparse bundled dataset
// still yields candidates in the 3x3 neighbourhood of most German locations.
const s2CellLevel = 7

// Entry is a postcode centroid.
type Entry struct {
	Postcode string             `json:"postcode"`
	Coords   spatial.Coordinate `json:"coords"`
	Place    string             `json:"place"`
}

// Gazetteer is an immutable postcode lookup table. It is safe for concurrent use.
type Gazetteer struct {
	entries   []Entry
	byCode    map[string]int
	cellIndex map[s2.CellID][]int
}

// Default returns the gazetteer built from the bundled dataset. The dataset is
// parsed once; a parse failure is a build defect and is reported on every call.
var Default = sync.OnceValues(func() (*Gazetteer, error) {
	fh, err := dataFS.Open(embeddedDataset)
	if err != nil {
		return nil, fmt.Errorf("opening bundled postcodes: %w", err)
	}
	defer fh.Close()

	return Read(fh)
})

// LoadFile reads a gazetteer from a CSV file with the columns
// postcode,lat,lon,place.
func LoadFile(path string) (*Gazetteer, error) {
	fh, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("opening gazetteer: %w", err)
	}
	defer fh.Close()

	return Read(fh)
}

// Read parses a gazetteer CSV. The first line must be the header.
func Read(r io.Reader) (*Gazetteer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("gazetteer: empty dataset")
		}

		return nil, fmt.Errorf("gazetteer: reading header: %w", err)
	}

	var entries []Entry

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("gazetteer: %w", err)
		}

		lat, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("gazetteer: postcode %s: parsing latitude: %w", rec[0], err)
		}

		lon, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("gazetteer: postcode %s: parsing longitude: %w", rec[0], err)
		}

		entries = append(entries, Entry{
			Postcode: rec[0],
			Coords:   spatial.Coordinate{Lat: lat, Lon: lon},
			Place:    rec[3],
		})
	}

	return New(entries)
}

// New builds a gazetteer from entries. Postcodes are normalized; duplicates and
// out-of-range coordinates are rejected.
func New(entries []Entry) (*Gazetteer, error) {
	g := &Gazetteer{
		entries:   make([]Entry, 0, len(entries)),
		byCode:    make(map[string]int, len(entries)),
		cellIndex: make(map[s2.CellID][]int),
	}

	for _, e := range entries {
		e.Postcode = Normalize(e.Postcode)
		if e.Postcode == "" {
			return nil, errors.New("gazetteer: empty postcode")
		}

		if _, dup := g.byCode[e.Postcode]; dup {
			return nil, fmt.Errorf("gazetteer: duplicate postcode %s", e.Postcode)
		}

		if err := e.Coords.Validate(); err != nil {
			return nil, fmt.Errorf("gazetteer: postcode %s: %w", e.Postcode, err)
		}

		idx := len(g.entries)
		g.entries = append(g.entries, e)
		g.byCode[e.Postcode] = idx

		cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(e.Coords.Lat, e.Coords.Lon)).Parent(s2CellLevel)
		g.cellIndex[cell] = append(g.cellIndex[cell], idx)
	}

	return g, nil
}

// Normalize trims a postcode and removes all interior whitespace.
func Normalize(postcode string) string {
	return strings.Join(strings.Fields(postcode), "")
}

// Lookup returns the entry for postcode. A miss is an expected outcome: the
// bundled dataset does not cover every German postcode.
func (g *Gazetteer) Lookup(postcode string) (Entry, bool) {
	idx, ok := g.byCode[Normalize(postcode)]
	if !ok {
		return Entry{}, false
	}

	return g.entries[idx], true
}

// Len returns the number of postcodes.
func (g *Gazetteer) Len() int {
	return len(g.entries)
}

// Postcodes returns all postcodes in ascending order.
func (g *Gazetteer) Postcodes() []string {
	codes := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		codes = append(codes, e.Postcode)
	}

	sort.Strings(codes)

	return codes
}

// cellAndNeighbors returns the given cell plus its eight surrounding cells.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	for i := 0; i < 4; i++ {
		cells = append(cells, edgeNeighbors[i])
	}

	seen := make(map[s2.CellID]bool)
	for _, c := range cells {
		seen[c] = true
	}

	for i := 0; i < 4; i++ {
		for _, corner := range edgeNeighbors[i].EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}

	return cells
}

// Nearest returns the postcode whose centroid is closest to c and the distance
// to it in kilometers. It reports false only for an empty gazetteer or a
// non-finite coordinate.
func (g *Gazetteer) Nearest(c spatial.Coordinate) (Entry, float64, bool) {
	if len(g.entries) == 0 ||
		math.IsNaN(c.Lat) || math.IsNaN(c.Lon) ||
		math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return Entry{}, 0, false
	}

	queryCell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)).Parent(s2CellLevel)

	var candidates []int
	for _, cell := range cellAndNeighbors(queryCell) {
		candidates = append(candidates, g.cellIndex[cell]...)
	}

	// far from any indexed cell: fall back to a full scan
	if len(candidates) == 0 {
		candidates = make([]int, len(g.entries))
		for i := range g.entries {
			candidates[i] = i
		}
	}

	best, bestDist := -1, math.MaxFloat64

	for _, idx := range candidates {
		e := g.entries[idx]
		d := c.DistanceTo(e.Coords)

		if d < bestDist || (d == bestDist && e.Postcode < g.entries[best].Postcode) {
			best, bestDist = idx, d
		}
	}

	return g.entries[best], bestDist, true
}
