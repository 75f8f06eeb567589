// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hwto/hwto/ingest"
	"github.com/hwto/hwto/roster"
	"github.com/spf13/cobra"
)

type importOptions struct {
	DryRun bool
	Sheet  string
}

var importOpts = &importOptions{}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import offices or employees from a CSV or Excel file",
	Long: `
Reads a CSV (comma, semicolon or tab separated, UTF-8, UTF-16 or Windows-1252)
or an .xlsx workbook. Column headers may be English or German (PLZ, Straße,
Ort, Abteilung, ...). Every valid row is placed at its postcode centroid.
Rows whose id is already stored are skipped.
`,
}

var importOfficesCmd = &cobra.Command{
	Use:   "offices <file>",
	Short: "Import offices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		table, err := readTable(args[0], importOpts.Sheet)
		if err != nil {
			return err
		}

		result := ws.pipeline.OfficeRows(table.Rows, table.Warnings)

		return storeImport(cmd.OutOrStdout(), ws.offices, roster.CollectionOffices, roster.MaxOffices, result, importOpts.DryRun)
	},
}

var importEmployeesCmd = &cobra.Command{
	Use:   "employees <file>",
	Short: "Import employees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		table, err := readTable(args[0], importOpts.Sheet)
		if err != nil {
			return err
		}

		result := ws.pipeline.EmployeeRows(table.Rows, table.Warnings)

		return storeImport(cmd.OutOrStdout(), ws.employees, roster.CollectionEmployees, roster.MaxEmployees, result, importOpts.DryRun)
	},
}

func readTable(path, sheet string) (*ingest.Table, error) {
	data, err := ingest.ReadFileLimited(path)
	if err != nil {
		return nil, err
	}

	if ingest.IsWorkbook(path) {
		return ingest.ReadWorkbook(bytes.NewReader(data), sheet)
	}

	text, err := ingest.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return ingest.Parse(text), nil
}

func storeImport[T roster.Record[T]](
	w io.Writer,
	store *roster.Store[T],
	collection string,
	limit int,
	result ingest.CsvParseResult[T],
	dryRun bool,
) error {
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	for _, invalid := range result.Invalid {
		for _, msg := range invalid.Errors {
			fmt.Fprintf(os.Stderr, "Row %d: %s\n", invalid.Row, msg)
		}
	}

	if dryRun {
		if err := roster.CheckCapacity(collection, store.Len(), len(result.Valid), limit); err != nil {
			return err
		}

		fmt.Fprintf(w, "Dry run: %d valid and %d invalid %s, nothing stored\n",
			len(result.Valid), len(result.Invalid), collection)

		return nil
	}

	added, err := store.AddWithinLimit(collection, limit, result.Valid)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Imported %d %s (%d invalid, %d already stored)\n",
		added, collection, len(result.Invalid), len(result.Valid)-added)

	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importOfficesCmd)
	importCmd.AddCommand(importEmployeesCmd)
	importCmd.PersistentFlags().BoolVar(
		&importOpts.DryRun,
		"dry-run",
		false,
		"Validate and geocode without storing anything",
	)
	importCmd.PersistentFlags().StringVar(
		&importOpts.Sheet,
		"sheet",
		"",
		"Worksheet to read from an .xlsx file. Defaults to the first one",
	)
}
