// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/ingest"
	"github.com/hwto/hwto/roster"
	"github.com/spf13/cobra"
)

var (
	addOffice   = ingest.OfficeInput{}
	addEmployee = ingest.EmployeeInput{}
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a single office or employee",
}

var addOfficeCmd = &cobra.Command{
	Use:   "office",
	Short: "Add an office",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		o, errs := ws.pipeline.NewOffice(addOffice)
		if len(errs) > 0 {
			return errors.New(strings.Join(errs, "; "))
		}

		if _, err := ws.offices.AddWithinLimit(roster.CollectionOffices, roster.MaxOffices, []roster.Office{o}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added office %s (%s)\n", o.Name, describeGeocode(o.GeocodeStatus, o.City))

		return nil
	},
}

var addEmployeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Add an employee",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		e, errs := ws.pipeline.NewEmployee(addEmployee)
		if len(errs) > 0 {
			return errors.New(strings.Join(errs, "; "))
		}

		if _, err := ws.employees.AddWithinLimit(roster.CollectionEmployees, roster.MaxEmployees, []roster.Employee{e}); err != nil {
			return err
		}

		if e.AssignedOffice != "" {
			if _, ok := roster.FindOffice(ws.offices.All(), e.AssignedOffice); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: no office named %q, distances use the nearest office\n", e.AssignedOffice)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added employee %s (%s)\n", e.Name, describeGeocode(e.GeocodeStatus, e.City))

		return nil
	},
}

func describeGeocode(status geocode.Status, city string) string {
	if status != geocode.StatusSuccess {
		return "postcode not found, no coordinates"
	}

	return "located in " + city
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addOfficeCmd)
	addCmd.AddCommand(addEmployeeCmd)

	f := addOfficeCmd.Flags()
	f.StringVar(&addOffice.Name, "name", "", "Office name")
	f.StringVar(&addOffice.Postcode, "postcode", "", "5-digit postcode")
	f.StringVar(&addOffice.Street, "street", "", "Street and number")
	f.StringVar(&addOffice.City, "city", "", "City. Defaults to the postcode's place")

	f = addEmployeeCmd.Flags()
	f.StringVar(&addEmployee.Name, "name", "", "Employee name")
	f.StringVar(&addEmployee.Postcode, "postcode", "", "5-digit postcode")
	f.StringVar(&addEmployee.Street, "street", "", "Street and number")
	f.StringVar(&addEmployee.City, "city", "", "City. Defaults to the postcode's place")
	f.StringVar(&addEmployee.Team, "team", "", "Team")
	f.StringVar(&addEmployee.Department, "department", "", "Department")
	f.StringVar(&addEmployee.Role, "role", "", "Role")
	f.StringVar(&addEmployee.AssignedOffice, "office", "", "Name of the assigned office")

	for _, c := range []*cobra.Command{addOfficeCmd, addEmployeeCmd} {
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("postcode")
	}
}
