// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"errors"
	"fmt"

	"github.com/hwto/hwto/geocode"
)

// RemoteTarget is a record queued for remote geocoding.
type RemoteTarget struct {
	ID      string
	Address string
}

// Addresses returns the addresses of targets, in order.
func Addresses(targets []RemoteTarget) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.Address
	}

	return out
}

// EmployeeTargets returns the employees still at postcode accuracy. Employees
// whose postcode did not resolve are included only with retryFailed.
func EmployeeTargets(employees []Employee, retryFailed bool) []RemoteTarget {
	var out []RemoteTarget

	for _, e := range employees {
		if e.GeocodeAccuracy == geocode.AccuracyAddress {
			continue
		}

		if e.GeocodeStatus == geocode.StatusFailed && !retryFailed {
			continue
		}

		out = append(out, RemoteTarget{ID: e.ID, Address: e.Address()})
	}

	return out
}

// OfficeTargets returns every office, or only the failed ones.
func OfficeTargets(offices []Office, onlyFailed bool) []RemoteTarget {
	var out []RemoteTarget

	for _, o := range offices {
		if onlyFailed && o.GeocodeStatus != geocode.StatusFailed {
			continue
		}

		out = append(out, RemoteTarget{ID: o.ID, Address: o.Address()})
	}

	return out
}

// ApplyStats counts the outcome of ApplyRemoteResults.
type ApplyStats struct {
	Updated int
	Failed  int
}

// ApplyRemoteResults stores successful address-level results. Failed results
// leave the record, including any postcode centroid, untouched.
func ApplyRemoteResults[T Record[T]](store *Store[T], targets []RemoteTarget, results []geocode.BatchResult) (ApplyStats, error) {
	var stats ApplyStats

	if len(targets) != len(results) {
		return stats, fmt.Errorf("got %d results for %d targets", len(results), len(targets))
	}

	var errs []error

	for i, res := range results {
		if res.Status != geocode.StatusSuccess || res.Coords == nil {
			stats.Failed++

			continue
		}

		ok, err := store.UpdateGeocode(targets[i].ID, GeocodeUpdate{
			Coords:   res.Coords,
			Status:   geocode.StatusSuccess,
			Accuracy: geocode.AccuracyAddress,
		})
		if err != nil {
			errs = append(errs, err)
		}

		if ok {
			stats.Updated++
		}
	}

	return stats, errors.Join(errs...)
}
