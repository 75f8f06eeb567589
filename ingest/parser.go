// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package ingest turns CSV and XLSX input into validated, geocoded office and
// employee records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\uFEFF"

// sniffRecords is the number of records inspected to detect the delimiter.
const sniffRecords = 10

var delimiterCandidates = []rune{',', ';', '\t'}

// Row is one data row keyed by canonical column name. Number is the 1-based
// row number with the header as row 1.
type Row struct {
	Number int
	Fields map[string]string
}

// Get returns the trimmed value of column.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// Table is the result of parsing a CSV or worksheet.
type Table struct {
	Headers  []string
	Rows     []Row
	Warnings []string
}

// DetectDelimiter picks the candidate delimiter that splits the first records
// into the most consistent number of fields. Ties prefer comma, then
// semicolon, then tab.
func DetectDelimiter(text string) rune {
	text = strings.TrimPrefix(text, utf8BOM)
	best, bestScore := ',', 0

	for _, candidate := range delimiterCandidates {
		reader := csv.NewReader(strings.NewReader(text))
		reader.Comma = candidate
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		header, err := reader.Read()
		if err != nil || len(header) < 2 {
			continue
		}

		score := 1

		for i := 1; i < sniffRecords; i++ {
			rec, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}

			if err == nil && len(rec) == len(header) {
				score++
			}
		}

		if score > bestScore {
			best, bestScore = candidate, score
		}
	}

	return best
}

// Parse reads CSV text with a header row. It never fails: malformed rows are
// reported as warnings, short rows are padded and long rows truncated. A
// leading UTF-8 BOM is ignored.
func Parse(text string) *Table {
	text = strings.TrimPrefix(text, utf8BOM)
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = DetectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		table := &Table{}
		if !errors.Is(err, io.EOF) {
			table.Warnings = append(table.Warnings, fmt.Sprintf("Row 1: %v", err))
		}

		return table
	}

	var records []rawRecord

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		records = append(records, rawRecord{fields: rec, err: err})
	}

	return build(header, records)
}

// FromRecords builds a table from raw records whose first element is the
// header, as read from a worksheet.
func FromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	raw := make([]rawRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		raw = append(raw, rawRecord{fields: rec})
	}

	return build(records[0], raw)
}

type rawRecord struct {
	fields []string
	err    error
}

// build canonicalizes the header and numbers the rows. Blank records are
// skipped and do not consume a row number; unreadable ones do.
func build(header []string, records []rawRecord) *Table {
	table := &Table{}
	seen := make(map[string]bool)

	columns := make([]string, len(header))
	for i, h := range header {
		canonical := CanonicalHeader(h)
		if canonical == "" {
			continue
		}

		if seen[canonical] {
			table.Warnings = append(table.Warnings, fmt.Sprintf("Row 1: duplicate column %q ignored", canonical))

			continue
		}

		seen[canonical] = true
		columns[i] = canonical
		table.Headers = append(table.Headers, canonical)
	}

	width := len(columns)
	rowNum := 1

	for _, r := range records {
		if r.err == nil && blank(r.fields) {
			continue
		}

		rowNum++

		if r.err != nil {
			table.Warnings = append(table.Warnings, fmt.Sprintf("Row %d: skipped unreadable row: %v", rowNum, r.err))

			continue
		}

		rec := r.fields

		switch {
		case len(rec) < width:
			table.Warnings = append(table.Warnings, fmt.Sprintf(
				"Row %d: expected %d fields but found %d; missing fields left empty", rowNum, width, len(rec)))

			padded := make([]string, width)
			copy(padded, rec)
			rec = padded
		case len(rec) > width:
			table.Warnings = append(table.Warnings, fmt.Sprintf(
				"Row %d: expected %d fields but found %d; extra fields ignored", rowNum, width, len(rec)))

			rec = rec[:width]
		}

		fields := make(map[string]string, len(table.Headers))

		for i, col := range columns {
			if col != "" {
				fields[col] = rec[i]
			}
		}

		table.Rows = append(table.Rows, Row{Number: rowNum, Fields: fields})
	}

	return table
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
