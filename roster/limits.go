// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import "fmt"

// Collection capacities.
const (
	MaxOffices   = 20
	MaxEmployees = 1000
)

// Collection names used in messages and storage keys.
const (
	CollectionOffices   = "offices"
	CollectionEmployees = "employees"
)

// CapacityError rejects a whole import batch.
type CapacityError struct {
	Collection string
	Current    int
	Attempted  int
	Limit      int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot import %d %s: %d already stored, limit is %d",
		e.Attempted, e.Collection, e.Current, e.Limit)
}

// CheckCapacity returns a CapacityError when adding incoming records to
// current would exceed limit.
func CheckCapacity(collection string, current, incoming, limit int) error {
	if current+incoming > limit {
		return &CapacityError{Collection: collection, Current: current, Attempted: incoming, Limit: limit}
	}

	return nil
}
