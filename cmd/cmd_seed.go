// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedForce bool

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo offices and employees",
		Long: `
Fills empty collections with five demo offices and 45 demo employees. A
collection holding imported or seeded data is left alone unless --force is
given, which replaces it.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(rootOptions, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			out := cmd.OutOrStdout()

			if ws.offices.Initialized() && !seedForce {
				fmt.Fprintf(out, "Offices already hold %d records, use --force to replace them\n", ws.offices.Len())
			} else {
				if err := ws.offices.SetAll(ws.seedOffices()); err != nil {
					return fmt.Errorf("seeding offices: %w", err)
				}

				fmt.Fprintf(out, "Seeded %d offices\n", ws.offices.Len())
			}

			if ws.employees.Initialized() && !seedForce {
				fmt.Fprintf(out, "Employees already hold %d records, use --force to replace them\n", ws.employees.Len())

				return nil
			}

			if err := ws.employees.SetAll(ws.seedEmployees()); err != nil {
				return fmt.Errorf("seeding employees: %w", err)
			}

			fmt.Fprintf(out, "Seeded %d employees\n", ws.employees.Len())

			return nil
		},
	}
	cmd.Flags().BoolVar(&seedForce, "force", false, "Replace existing records")

	return cmd
}

func init() {
	rootCmd.AddCommand(newSeedCmd())
}
