// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/spatial"
)

// SnapshotVersion is written to and required from snapshot files.
const SnapshotVersion = "1.0"

// Snapshot is the JSON export format of both collections.
type Snapshot struct {
	Version     string     `json:"version"`
	LastUpdated time.Time  `json:"last_updated"`
	Offices     []Office   `json:"offices"`
	Employees   []Employee `json:"employees"`
}

// TakeSnapshot copies the current contents of both stores.
func TakeSnapshot(offices *Store[Office], employees *Store[Employee]) *Snapshot {
	return &Snapshot{
		Version:     SnapshotVersion,
		LastUpdated: time.Now().UTC(),
		Offices:     offices.All(),
		Employees:   employees.All(),
	}
}

// WriteSnapshot writes snap as indented JSON.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return nil
}

// ExportToJSON writes both stores to path.
func ExportToJSON(offices *Store[Office], employees *Store[Employee], path string) error {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304 - path is provided by the operator
	if err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	if err := WriteSnapshot(fh, TakeSnapshot(offices, employees)); err != nil {
		fh.Close()

		return err
	}

	return fh.Close()
}

// ReadSnapshot decodes and checks a snapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}

	if err := CheckCapacity(CollectionOffices, 0, len(snap.Offices), MaxOffices); err != nil {
		return nil, err
	}

	if err := CheckCapacity(CollectionEmployees, 0, len(snap.Employees), MaxEmployees); err != nil {
		return nil, err
	}

	for _, o := range snap.Offices {
		if o.ID == "" {
			return nil, errors.New("snapshot contains an office without id")
		}

		if err := checkGeocode(o.GeocodeStatus, o.Coords); err != nil {
			return nil, fmt.Errorf("office %s: %w", o.ID, err)
		}
	}

	for _, e := range snap.Employees {
		if e.ID == "" {
			return nil, errors.New("snapshot contains an employee without id")
		}

		if err := checkGeocode(e.GeocodeStatus, e.Coords); err != nil {
			return nil, fmt.Errorf("employee %s: %w", e.ID, err)
		}
	}

	return &snap, nil
}

// checkGeocode rejects an unknown status, a success without coordinates and a
// failure with them.
func checkGeocode(status geocode.Status, coords *spatial.Coordinate) error {
	st, err := geocode.ParseStatus(string(status))
	if err != nil {
		return err
	}

	switch {
	case st == geocode.StatusSuccess && coords == nil:
		return errors.New("geocode status success without coordinates")
	case st == geocode.StatusFailed && coords != nil:
		return errors.New("geocode status failed with coordinates")
	}

	if coords != nil {
		return coords.Validate()
	}

	return nil
}

// Restore replaces both stores with the snapshot contents.
func Restore(offices *Store[Office], employees *Store[Employee], snap *Snapshot) error {
	if err := offices.SetAll(snap.Offices); err != nil {
		return fmt.Errorf("restoring offices: %w", err)
	}

	if err := employees.SetAll(snap.Employees); err != nil {
		return fmt.Errorf("restoring employees: %w", err)
	}

	return nil
}

// ImportFromJSON restores both stores from the snapshot at path.
func ImportFromJSON(offices *Store[Office], employees *Store[Employee], path string) (*Snapshot, error) {
	fh, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	defer fh.Close()

	snap, err := ReadSnapshot(fh)
	if err != nil {
		return nil, err
	}

	return snap, Restore(offices, employees, snap)
}
