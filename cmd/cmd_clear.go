// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/hwto/hwto/roster"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:       "clear [offices|employees]",
	Short:     "Delete stored offices, employees, or both",
	Long:      "Deletes the stored records. Cleared collections stay empty; demo data is not loaded again.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{roster.CollectionOffices, roster.CollectionEmployees},
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		which := ""
		if len(args) == 1 {
			which = args[0]
		}

		if which != roster.CollectionEmployees {
			if err := ws.offices.Clear(); err != nil {
				return fmt.Errorf("clearing offices: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Cleared offices")
		}

		if which != roster.CollectionOffices {
			if err := ws.employees.Clear(); err != nil {
				return fmt.Errorf("clearing employees: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Cleared employees")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
