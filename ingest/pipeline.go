// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/roster"
)

// ValidationError lists the rules a row broke. Row uses the same numbering as
// Row.Number.
type ValidationError struct {
	Row    int               `json:"row"`
	Errors []string          `json:"errors"`
	Data   map[string]string `json:"data"`
}

// CsvParseResult splits a parsed input into records and rejected rows.
type CsvParseResult[T any] struct {
	Valid    []T               `json:"valid"`
	Invalid  []ValidationError `json:"invalid"`
	Warnings []string          `json:"warnings"`
}

// Pipeline validates, geocodes and assigns ids to imported rows.
type Pipeline struct {
	Local *geocode.Local
	NewID func() string
}

// NewPipeline returns a pipeline minting random UUIDs.
func NewPipeline(local *geocode.Local) *Pipeline {
	return &Pipeline{Local: local, NewID: uuid.NewString}
}

// ParseOffices imports office CSV text.
func (p *Pipeline) ParseOffices(text string) CsvParseResult[roster.Office] {
	t := Parse(text)

	return p.OfficeRows(t.Rows, t.Warnings)
}

// ParseEmployees imports employee CSV text.
func (p *Pipeline) ParseEmployees(text string) CsvParseResult[roster.Employee] {
	t := Parse(text)

	return p.EmployeeRows(t.Rows, t.Warnings)
}

// OfficeRows imports already parsed rows.
func (p *Pipeline) OfficeRows(rows []Row, warnings []string) CsvParseResult[roster.Office] {
	res := CsvParseResult[roster.Office]{Warnings: nonNil(warnings)}

	for _, row := range rows {
		v := ValidateOffice(OfficeInput{
			Name:     row.Get(ColName),
			Postcode: ExtractPostcode(row),
			Street:   ExtractStreet(row),
			City:     ExtractCity(row),
		})
		if !v.OK() {
			res.Invalid = append(res.Invalid, ValidationError{Row: row.Number, Errors: v.Errors, Data: row.Fields})

			continue
		}

		res.Valid = append(res.Valid, p.office(v.Value))
	}

	return res
}

// EmployeeRows imports already parsed rows.
func (p *Pipeline) EmployeeRows(rows []Row, warnings []string) CsvParseResult[roster.Employee] {
	res := CsvParseResult[roster.Employee]{Warnings: nonNil(warnings)}

	for _, row := range rows {
		v := ValidateEmployee(EmployeeInput{
			Name:           row.Get(ColName),
			Postcode:       ExtractPostcode(row),
			Street:         ExtractStreet(row),
			City:           ExtractCity(row),
			Team:           row.Get(ColTeam),
			Department:     row.Get(ColDepartment),
			Role:           row.Get(ColRole),
			AssignedOffice: row.Get(ColAssignedOffice),
		})
		if !v.OK() {
			res.Invalid = append(res.Invalid, ValidationError{Row: row.Number, Errors: v.Errors, Data: row.Fields})

			continue
		}

		res.Valid = append(res.Valid, p.employee(v.Value))
	}

	return res
}

// NewOffice builds a single office from manual input.
func (p *Pipeline) NewOffice(in OfficeInput) (roster.Office, []string) {
	in.Postcode = compact(in.Postcode)

	v := ValidateOffice(in)
	if !v.OK() {
		return roster.Office{}, v.Errors
	}

	return p.office(v.Value), nil
}

// NewEmployee builds a single employee from manual input.
func (p *Pipeline) NewEmployee(in EmployeeInput) (roster.Employee, []string) {
	in.Postcode = compact(in.Postcode)

	v := ValidateEmployee(in)
	if !v.OK() {
		return roster.Employee{}, v.Errors
	}

	return p.employee(v.Value), nil
}

func (p *Pipeline) office(in OfficeInput) roster.Office {
	geo := p.Local.GeocodeByPostcode(in.Postcode)

	o := roster.Office{
		ID:            p.NewID(),
		Name:          in.Name,
		Postcode:      in.Postcode,
		Street:        in.Street,
		City:          in.City,
		Coords:        geo.Coords,
		GeocodeStatus: statusOf(geo),
	}

	if o.City == "" && geo.City != nil {
		o.City = *geo.City
	}

	return o
}

func (p *Pipeline) employee(in EmployeeInput) roster.Employee {
	geo := p.Local.GeocodeByPostcode(in.Postcode)

	e := roster.Employee{
		ID:              p.NewID(),
		Name:            in.Name,
		Postcode:        in.Postcode,
		Street:          in.Street,
		City:            in.City,
		Team:            in.Team,
		Department:      in.Department,
		Role:            in.Role,
		AssignedOffice:  in.AssignedOffice,
		Coords:          geo.Coords,
		GeocodeAccuracy: geo.Accuracy,
		GeocodeStatus:   statusOf(geo),
	}

	if e.City == "" && geo.City != nil {
		e.City = *geo.City
	}

	return e
}

func statusOf(geo geocode.LocalResult) geocode.Status {
	if geo.Found() {
		return geocode.StatusSuccess
	}

	return geocode.StatusFailed
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
