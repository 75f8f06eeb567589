// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"sort"
	"strings"

	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/utils/textutils"
)

// EmployeeFilter selects employees for display. Empty criteria match
// everything.
type EmployeeFilter struct {
	Team       string `form:"team" json:"team,omitempty"`
	Department string `form:"department" json:"department,omitempty"`
	Office     string `form:"office" json:"office,omitempty"`
	Search     string `form:"q" json:"q,omitempty"`
}

// Match reports whether e passes the filter. Only successfully geocoded
// employees ever match.
func (f EmployeeFilter) Match(e Employee) bool {
	if e.GeocodeStatus != geocode.StatusSuccess {
		return false
	}

	if f.Team != "" && e.Team != f.Team {
		return false
	}

	if f.Department != "" && e.Department != f.Department {
		return false
	}

	if f.Office != "" && e.AssignedOffice != f.Office {
		return false
	}

	return textutils.ContainsFold(e.Name, f.Search)
}

// Filter returns the matching employees in their original order.
func (f EmployeeFilter) Filter(employees []Employee) []Employee {
	out := make([]Employee, 0, len(employees))

	for _, e := range employees {
		if f.Match(e) {
			out = append(out, e)
		}
	}

	return out
}

// Teams returns the distinct teams, sorted.
func Teams(employees []Employee) []string {
	return distinct(employees, func(e Employee) string { return e.Team })
}

// Departments returns the distinct non-empty departments, sorted.
func Departments(employees []Employee) []string {
	return distinct(employees, func(e Employee) string { return e.Department })
}

// Offices returns the distinct non-empty assigned office names, sorted.
func Offices(employees []Employee) []string {
	return distinct(employees, func(e Employee) string { return e.AssignedOffice })
}

func distinct(employees []Employee, field func(Employee) string) []string {
	seen := make(map[string]bool)
	out := []string{}

	for _, e := range employees {
		v := strings.TrimSpace(field(e))
		if v == "" || seen[v] {
			continue
		}

		seen[v] = true
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

// StatusCounts breaks a collection down by geocode status.
type StatusCounts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

func (c *StatusCounts) add(s geocode.Status) {
	c.Total++

	switch s {
	case geocode.StatusPending:
		c.Pending++
	case geocode.StatusSuccess:
		c.Success++
	case geocode.StatusFailed:
		c.Failed++
	}
}

// Summary describes the stored data.
type Summary struct {
	Offices         StatusCounts `json:"offices"`
	Employees       StatusCounts `json:"employees"`
	AddressAccuracy int          `json:"addressAccuracy"`
	Teams           int          `json:"teams"`
	Departments     int          `json:"departments"`
}

// Summarize counts offices and employees by status.
func Summarize(offices []Office, employees []Employee) Summary {
	var s Summary

	for _, o := range offices {
		s.Offices.add(o.GeocodeStatus)
	}

	for _, e := range employees {
		s.Employees.add(e.GeocodeStatus)

		if e.GeocodeAccuracy == geocode.AccuracyAddress {
			s.AddressAccuracy++
		}
	}

	s.Teams = len(Teams(employees))
	s.Departments = len(Departments(employees))

	return s
}
