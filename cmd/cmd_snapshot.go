// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/hwto/hwto/roster"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write all offices and employees to a JSON file",
	Long:  "Writes both collections to an unencrypted JSON file that restore reads back.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		if err := roster.ExportToJSON(ws.offices, ws.employees, args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d offices and %d employees to %s\n",
			ws.offices.Len(), ws.employees.Len(), args[0])

		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file.json>",
	Short: "Replace all offices and employees with the contents of an export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		snap, err := roster.ImportFromJSON(ws.offices, ws.employees, args[0])
		if err != nil {
			return fmt.Errorf("restoring %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d offices and %d employees exported %s\n",
			len(snap.Offices), len(snap.Employees), snap.LastUpdated.Format("2006-01-02 15:04:05"))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
}
