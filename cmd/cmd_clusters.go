// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hwto/hwto/roster"
	"github.com/hwto/hwto/spatial"
	"github.com/spf13/cobra"
)

type clustersOptions struct {
	Resolution int
	RadiusKm   float64
}

var clustersOpts = &clustersOptions{}

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Group employees by where they live",
	Long: `
By default counts employees per H3 hexagon at --res (5 is roughly 250 km²,
7 roughly 5 km²). With --radius-km, groups employees living within that
distance of another member of the group instead.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(rootOptions, true)
		if err != nil {
			return err
		}
		defer ws.Close()

		var employees []roster.Employee

		for _, e := range employeeFilter.Filter(ws.employees.All()) {
			if e.Coords != nil {
				employees = append(employees, e)
			}
		}

		offices := ws.offices.All()

		if clustersOpts.RadiusKm > 0 {
			return printProximityClusters(cmd, employees, offices, clustersOpts.RadiusKm)
		}

		return printCellDensity(cmd, employees, clustersOpts.Resolution)
	},
}

type group struct {
	key     string
	members []roster.Employee
}

func (g group) centroid() spatial.Coordinate {
	points := make([]spatial.Coordinate, 0, len(g.members))
	for _, e := range g.members {
		points = append(points, *e.Coords)
	}

	c, _ := spatial.Centroid(points)

	return c
}

func sortGroups(groups []group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].members) != len(groups[j].members) {
			return len(groups[i].members) > len(groups[j].members)
		}

		return groups[i].key < groups[j].key
	})
}

func printCellDensity(cmd *cobra.Command, employees []roster.Employee, res int) error {
	byCell := make(map[string]*group)

	for _, e := range employees {
		cell, err := spatial.Cell(*e.Coords, res)
		if err != nil {
			return err
		}

		g, ok := byCell[cell]
		if !ok {
			g = &group{key: cell}
			byCell[cell] = g
		}

		g.members = append(g.members, e)
	}

	groups := make([]group, 0, len(byCell))
	for _, g := range byCell {
		groups = append(groups, *g)
	}

	sortGroups(groups)

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "CELL\tEMPLOYEES\tCENTER\tTEAMS")

	for _, g := range groups {
		c := g.centroid()
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", g.key, len(g.members), formatCoords(&c), strings.Join(roster.Teams(g.members), ", "))
	}

	return tw.Flush()
}

func printProximityClusters(cmd *cobra.Command, employees []roster.Employee, offices []roster.Office, radiusKm float64) error {
	points := make([]spatial.Coordinate, len(employees))
	for i, e := range employees {
		points[i] = *e.Coords
	}

	clusters := spatial.Cluster(points, radiusKm)
	groups := make([]group, 0, len(clusters))

	for _, idxs := range clusters {
		g := group{}
		for _, i := range idxs {
			g.members = append(g.members, employees[i])
		}

		g.key = g.members[0].Name
		groups = append(groups, g)
	}

	sortGroups(groups)

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "EMPLOYEES\tCENTER\tNEAREST OFFICE\tMEMBERS")

	for _, g := range groups {
		c := g.centroid()

		nearest := spatial.NoDistance
		if o, km, ok := roster.NearestOffice(c, offices); ok {
			nearest = fmt.Sprintf("%s (%s)", o.Name, spatial.FormatDistance(&km, false))
		}

		names := make([]string, len(g.members))
		for i, e := range g.members {
			names[i] = e.Name
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", len(g.members), formatCoords(&c), nearest, strings.Join(names, ", "))
	}

	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(clustersCmd)
	f := clustersCmd.Flags()
	f.IntVar(&clustersOpts.Resolution, "res", 5, "H3 resolution (0-15)")
	f.Float64Var(&clustersOpts.RadiusKm, "radius-km", 0, "Group employees living within this distance of each other")
	addFilterFlags(clustersCmd)
}
