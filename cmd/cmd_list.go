// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hwto/hwto/roster"
	"github.com/hwto/hwto/spatial"
	"github.com/spf13/cobra"
)

var (
	employeeFilter = roster.EmployeeFilter{}
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored offices or employees",
}

var listOfficesCmd = &cobra.Command{
	Use:   "offices",
	Short: "List offices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(rootOptions, true)
		if err != nil {
			return err
		}
		defer ws.Close()

		offices := ws.offices.All()
		if listJSON {
			return writeJSON(cmd.OutOrStdout(), offices)
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "NAME\tADDRESS\tSTATUS\tCOORDINATES")

		for _, o := range offices {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Name, o.Address(), o.GeocodeStatus, formatCoords(o.Coords))
		}

		return tw.Flush()
	},
}

var listEmployeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List geocoded employees matching the filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(rootOptions, true)
		if err != nil {
			return err
		}
		defer ws.Close()

		all := ws.employees.All()
		employees := employeeFilter.Filter(all)

		if listJSON {
			return writeJSON(cmd.OutOrStdout(), employees)
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "NAME\tTEAM\tDEPARTMENT\tOFFICE\tADDRESS\tACCURACY")

		for _, e := range employees {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Name, e.Team, dash(e.Department), dash(e.AssignedOffice), e.Address(), e.GeocodeAccuracy)
		}

		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d employees. Teams: %s\n",
			len(employees), len(all), strings.Join(roster.Teams(all), ", "))

		return nil
	},
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func formatCoords(c *spatial.Coordinate) string {
	if c == nil {
		return spatial.NoDistance
	}

	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lon)
}

func dash(s string) string {
	if s == "" {
		return spatial.NoDistance
	}

	return s
}

// addFilterFlags binds the employee filter to cmd.
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&employeeFilter.Team, "team", "", "Only employees of this team")
	f.StringVar(&employeeFilter.Department, "department", "", "Only employees of this department")
	f.StringVar(&employeeFilter.Office, "office", "", "Only employees assigned to this office")
	f.StringVarP(&employeeFilter.Search, "search", "q", "", "Only employees whose name contains this text")
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listOfficesCmd)
	listCmd.AddCommand(listEmployeesCmd)
	listCmd.PersistentFlags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
	addFilterFlags(listEmployeesCmd)
}
