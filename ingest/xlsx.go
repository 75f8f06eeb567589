// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}

	return false
}

// ReadWorkbook reads a worksheet whose first row is the header. An empty
// sheet name selects the first sheet.
func ReadWorkbook(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	if len(rows) == 0 {
		return &Table{}, nil
	}

	// trailing empty cells are not returned by GetRows
	width := len(rows[0])
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) < width {
			padded := make([]string, width)
			copy(padded, rows[i])
			rows[i] = padded
		}
	}

	return FromRecords(rows), nil
}
