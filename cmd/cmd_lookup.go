// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/spatial"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var lookupCoords = struct {
	Lat, Lon float64
}{}

var lookupCmd = &cobra.Command{
	Use:   "lookup [postcode...]",
	Short: "Look up postcodes, or the postcode nearest to a coordinate",
	Long: `Prints the centroid and place of each postcode. Without arguments, reads one
postcode per line from stdin.

$ echo 10115 | hwto lookup
10115	{"postcode":"10115","coords":{"lat":52.5323,"lon":13.3846},"city":"Berlin","accuracy":"postcode-centroid"}

With --lat and --lon, prints the nearest known postcode instead.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		local, err := openGeocoder(rootOptions.Gazetteer)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			c := spatial.Coordinate{Lat: lookupCoords.Lat, Lon: lookupCoords.Lon}
			if err := c.Validate(); err != nil {
				return err
			}

			entry, km, ok := local.Gazetteer().Nearest(c)
			if !ok {
				return fmt.Errorf("no postcode near %s", c)
			}

			fmt.Fprintf(out, "%s\t%s\t%s\n", entry.Postcode, entry.Place, spatial.FormatDistance(&km, false))

			return nil
		}

		if len(args) > 0 {
			for _, postcode := range args {
				if err := printLookup(out, local, postcode); err != nil {
					return err
				}
			}

			return nil
		}

		if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Enter postcodes to look up, one per line…")
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := printLookup(out, local, scanner.Text()); err != nil {
				return err
			}
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		return nil
	},
}

func printLookup(w io.Writer, local *geocode.Local, postcode string) error {
	res := local.GeocodeByPostcode(postcode)
	if !res.Found() {
		_, err := fmt.Fprintf(w, "%s\t%q\n", postcode, "postcode not found")

		return err
	}

	s, err := json.Marshal(res)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\t%s\n", postcode, s)

	return err
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().Float64Var(&lookupCoords.Lat, "lat", 0, "Latitude of the point to resolve")
	lookupCmd.Flags().Float64Var(&lookupCoords.Lon, "lon", 0, "Longitude of the point to resolve")
	lookupCmd.MarkFlagsRequiredTogether("lat", "lon")
}
