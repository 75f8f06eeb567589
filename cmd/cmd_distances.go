// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/hwto/hwto/roster"
	"github.com/hwto/hwto/spatial"
	"github.com/spf13/cobra"
)

type distancesOptions struct {
	Road    bool
	Nearest bool
	Format  string
	Out     string
	Mode    string
}

var distancesOpts = &distancesOptions{}

var distancesCmd = &cobra.Command{
	Use:   "distances",
	Short: "Show how far each employee lives from their office",
	Long: `
Pairs every geocoded employee with the assigned office, or with the nearest
office when none is assigned or the name is unknown. Distances are straight
lines; --road shows an estimate of the driving distance instead.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := spatial.ParseTravelMode(distancesOpts.Mode)
		if err != nil {
			return err
		}

		ws, err := openWorkspace(rootOptions, true)
		if err != nil {
			return err
		}
		defer ws.Close()

		employees := employeeFilter.Filter(ws.employees.All())
		offices := ws.offices.All()

		pairings := roster.Pairings(employees, offices, distancesOpts.Road)
		if distancesOpts.Nearest {
			pairings = roster.NearestPairings(employees, offices, distancesOpts.Road)
		}

		switch distancesOpts.Format {
		case "table":
			return printPairings(cmd, pairings)
		case "json":
			return writeJSON(cmd.OutOrStdout(), pairings)
		case "xlsx":
			if distancesOpts.Out == "" {
				return fmt.Errorf("--out is required with --format xlsx")
			}

			fh, err := os.OpenFile(distancesOpts.Out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304 - path is provided by the operator
			if err != nil {
				return fmt.Errorf("creating %s: %w", distancesOpts.Out, err)
			}

			if err := roster.WritePairingsXLSX(fh, pairings, mode); err != nil {
				fh.Close()

				return err
			}

			if err := fh.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(pairings), distancesOpts.Out)

			return nil
		default:
			return fmt.Errorf("unknown format %q (want table, json or xlsx)", distancesOpts.Format)
		}
	},
}

func printPairings(cmd *cobra.Command, pairings []roster.Pairing) error {
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "EMPLOYEE\tTEAM\tPOSTCODE\tOFFICE\tDISTANCE")

	unresolved := 0

	for _, p := range pairings {
		office := spatial.NoDistance
		if p.Office != nil {
			office = p.Office.Name
			if !p.Assigned {
				office += " (nearest)"
			}
		}

		if p.UnresolvedOffice != "" {
			unresolved++
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Employee.Name, p.Employee.Team, p.Employee.Postcode, office, p.Distance)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if unresolved > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d employees name an office that does not exist or is not geocoded\n", unresolved)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(distancesCmd)
	f := distancesCmd.Flags()
	f.BoolVar(&distancesOpts.Road, "road", false, "Show estimated road distances")
	f.BoolVar(&distancesOpts.Nearest, "nearest", false, "Pair with the nearest office, ignoring assignments")
	f.StringVar(&distancesOpts.Format, "format", "table", "Output format: table, json or xlsx")
	f.StringVar(&distancesOpts.Out, "out", "", "Output file for --format xlsx")
	f.StringVar(&distancesOpts.Mode, "mode", string(spatial.Driving), "Travel mode of the directions links: driving, transit, walking or bicycling")
	addFilterFlags(distancesCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count stored records by geocoding status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(rootOptions, true)
		if err != nil {
			return err
		}
		defer ws.Close()

		s := roster.Summarize(ws.offices.All(), ws.employees.All())

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "\tTOTAL\tLOCATED\tNOT FOUND\tPENDING")
		fmt.Fprintf(tw, "offices\t%d\t%d\t%d\t%d\n", s.Offices.Total, s.Offices.Success, s.Offices.Failed, s.Offices.Pending)
		fmt.Fprintf(tw, "employees\t%d\t%d\t%d\t%d\n", s.Employees.Total, s.Employees.Success, s.Employees.Failed, s.Employees.Pending)

		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d employees at street-address accuracy, %d teams, %d departments\n",
			s.AddressAccuracy, s.Teams, s.Departments)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
