// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/hwto/hwto/gazetteer"
	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/roster"
	"github.com/hwto/hwto/utils/httputils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const (
	providerGeoapify = "geoapify"
	providerGoogle   = "google"

	remoteTimeout = 10 * time.Second
	// remote results further than this from the postcode centroid are reported
	driftWarningKm = 25
)

type geocodeOptions struct {
	Provider            string
	APIKey              string
	Project             string
	RetryFailed         bool
	Offices             bool
	RequestsPerSecond   float64
	EnableHTTPTrace     bool
	EnableHTTPBodyTrace bool
}

var geocodeOpts = &geocodeOptions{}

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Refine postcode locations to street addresses with an online geocoder",
	Long: `
Sends the address of every employee still placed at a postcode centroid to
Geoapify or Google Maps, one request at a time. Successful results replace the
centroid; failures keep it. Addresses leave this machine only through this
command.

The API key comes from --api-key, GEOAPIFY_API_KEY or GOOGLE_MAPS_API_KEY.
For Google, a key named "` + geocode.GoogleKeyDisplayName + `" is looked up through
Application Default Credentials when no key is given.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if geocodeOpts.RequestsPerSecond <= 0 {
			return fmt.Errorf("--rps must be positive")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		ws, err := openWorkspace(rootOptions, false)
		if err != nil {
			return err
		}
		defer ws.Close()

		remote, err := newRemote(ctx, geocodeOpts)
		if err != nil {
			return err
		}

		if remote == nil {
			log.Printf("No API key for %s; every address will fail", geocodeOpts.Provider)
		}

		var stats roster.ApplyStats

		if geocodeOpts.Offices {
			targets := roster.OfficeTargets(ws.offices.All(), !geocodeOpts.RetryFailed)
			results := runBatch(ctx, remote, targets, "offices")
			reportDrift(ws.local.Gazetteer(), targets, results)

			stats, err = roster.ApplyRemoteResults(ws.offices, targets, results)
		} else {
			targets := roster.EmployeeTargets(ws.employees.All(), geocodeOpts.RetryFailed)
			results := runBatch(ctx, remote, targets, "employees")
			reportDrift(ws.local.Gazetteer(), targets, results)

			stats, err = roster.ApplyRemoteResults(ws.employees, targets, results)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Geocoding complete - %d updated, %d failed\n", stats.Updated, stats.Failed)

		return err
	},
}

func newRemote(ctx context.Context, opts *geocodeOptions) (geocode.Remote, error) {
	var trace io.Writer
	if opts.EnableHTTPTrace || opts.EnableHTTPBodyTrace {
		trace = os.Stderr
	}

	client := httputils.NewClient(userAgent(), remoteTimeout, trace, opts.EnableHTTPBodyTrace)

	switch opts.Provider {
	case providerGeoapify:
		key := opts.APIKey
		if key == "" {
			key = os.Getenv("GEOAPIFY_API_KEY")
		}

		if key == "" {
			return nil, nil
		}

		return geocode.NewGeoapifyGeocoder(key, client), nil
	case providerGoogle:
		key := opts.APIKey
		if key == "" {
			key = os.Getenv("GOOGLE_MAPS_API_KEY")
		}

		if key == "" {
			log.Println("GOOGLE_MAPS_API_KEY is not set. Attempting to retrieve via ADC...")

			var err error

			key, err = geocode.GoogleAPIKeyFromADC(ctx, opts.Project)
			if err != nil {
				log.Printf("Failed to retrieve API key via ADC: %v", err)

				return nil, nil
			}

			log.Println("Retrieved Google Maps API key via ADC")
		}

		return geocode.NewGoogleMapsGeocoder(key, client), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want %s or %s)", opts.Provider, providerGeoapify, providerGoogle)
	}
}

func runBatch(ctx context.Context, remote geocode.Remote, targets []roster.RemoteTarget, what string) []geocode.BatchResult {
	if len(targets) == 0 {
		log.Printf("No %s need geocoding", what)

		return nil
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(targets),
			progressbar.OptionSetDescription("Geocoding "+what),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	opts := geocode.BatchOptions{
		Limiter: rate.NewLimiter(rate.Limit(geocodeOpts.RequestsPerSecond), 1),
		OnProgress: func(p geocode.Progress) {
			if p.Status == geocode.ProgressProcessing {
				return
			}

			if bar == nil {
				log.Printf("[%d/%d] %s: %s", p.Current, p.Total, p.Status, p.Address)
			} else if err := bar.Add(1); err != nil {
				log.Printf("updating progress bar: %v", err)
			}
		},
	}

	results := geocode.BatchGeocode(ctx, remote, roster.Addresses(targets), opts)

	for _, r := range results {
		if r.Status == geocode.StatusFailed {
			log.Printf("Geocoding failed - %s: %s", r.Address, r.Error)
		}
	}

	return results
}

// reportDrift logs results that land outside Germany or far from any known
// postcode, which usually means the provider matched the wrong place.
func reportDrift(gaz *gazetteer.Gazetteer, targets []roster.RemoteTarget, results []geocode.BatchResult) {
	for i, r := range results {
		if r.Coords == nil {
			continue
		}

		if !r.Coords.InGermany() {
			log.Printf("Result for %q is outside Germany: %s", targets[i].Address, formatCoords(r.Coords))

			continue
		}

		if entry, km, ok := gaz.Nearest(*r.Coords); ok && km > driftWarningKm {
			log.Printf("Result for %q is %.0f km from the nearest known postcode %s (%s)",
				targets[i].Address, km, entry.Postcode, entry.Place)
		}
	}
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
	f := geocodeCmd.Flags()
	f.StringVar(&geocodeOpts.Provider, "provider", providerGeoapify, "Geocoding service: geoapify or google")
	f.StringVar(&geocodeOpts.APIKey, "api-key", "", "API key of the provider")
	f.StringVar(&geocodeOpts.Project, "project", "", "Google Cloud project holding the Maps key. Defaults to the ADC project")
	f.BoolVar(&geocodeOpts.RetryFailed, "retry-failed", false, "Also send records whose postcode was not found")
	f.BoolVar(&geocodeOpts.Offices, "offices", false, "Geocode offices instead of employees")
	f.Float64Var(&geocodeOpts.RequestsPerSecond, "rps", geocode.DefaultRequestsPerSecond, "Maximum requests per second")
	f.BoolVar(&geocodeOpts.EnableHTTPTrace, "trace-http", false, "Display HTTP requests-responses")
	f.BoolVar(&geocodeOpts.EnableHTTPBodyTrace, "trace-http-body", false, "Display HTTP requests-responses bodies")
}
