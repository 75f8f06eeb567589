// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"

	"github.com/hwto/hwto/spatial"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the request ceiling of the free Geoapify tier.
const DefaultRequestsPerSecond = 5

// ProgressStatus is the state reported to a batch progress callback.
type ProgressStatus string

const (
	ProgressProcessing ProgressStatus = "processing"
	ProgressSuccess    ProgressStatus = "success"
	ProgressFailed     ProgressStatus = "failed"
)

// Progress describes one step of a batch. Current is 1-based.
type Progress struct {
	Current int
	Total   int
	Address string
	Status  ProgressStatus
}

// BatchResult is the outcome for one address. Exactly one of Coords and Error
// is set.
type BatchResult struct {
	Address string              `json:"address"`
	Coords  *spatial.Coordinate `json:"coords,omitempty"`
	Status  Status              `json:"status"`
	Error   string              `json:"error,omitempty"`
	Result  *RemoteResult       `json:"-"`
}

// BatchOptions tunes BatchGeocode.
type BatchOptions struct {
	// Limiter spaces requests. Nil selects DefaultRequestsPerSecond with burst 1.
	Limiter *rate.Limiter
	// OnProgress is called before and after each address.
	OnProgress func(Progress)
}

// BatchGeocode geocodes addresses one at a time, returning results in input
// order. A failed address never stops the batch. A nil remote fails every
// address with ErrNoAPIKey.
func BatchGeocode(ctx context.Context, remote Remote, addresses []string, opts BatchOptions) []BatchResult {
	results := make([]BatchResult, len(addresses))

	if remote == nil {
		for i, address := range addresses {
			results[i] = BatchResult{Address: address, Status: StatusFailed, Error: ErrNoAPIKey.Error()}
		}

		return results
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1)
	}

	report := func(i int, status ProgressStatus) {
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Current: i + 1, Total: len(addresses), Address: addresses[i], Status: status})
		}
	}

	for i, address := range addresses {
		report(i, ProgressProcessing)

		results[i] = geocodeOne(ctx, remote, limiter, address)

		if results[i].Status == StatusSuccess {
			report(i, ProgressSuccess)
		} else {
			report(i, ProgressFailed)
		}
	}

	return results
}

func geocodeOne(ctx context.Context, remote Remote, limiter *rate.Limiter, address string) BatchResult {
	if err := limiter.Wait(ctx); err != nil {
		return BatchResult{Address: address, Status: StatusFailed, Error: err.Error()}
	}

	res, err := remote.Geocode(ctx, address)
	if err != nil {
		return BatchResult{Address: address, Status: StatusFailed, Error: err.Error()}
	}

	coords := res.Coords

	return BatchResult{Address: address, Coords: &coords, Status: StatusSuccess, Result: res}
}
