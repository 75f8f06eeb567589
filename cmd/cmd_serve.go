// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/hwto/hwto/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API (local only)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := server.CheckLoopback(serveAddr); err != nil {
			return err
		}

		ws, err := openWorkspace(rootOptions, true)
		if err != nil {
			return err
		}
		defer ws.Close()

		srv := server.NewServer(ws.offices, ws.employees, ws.pipeline)

		fmt.Printf("Open http://%s/api/summary\n", serveAddr)
		fmt.Println("Local only - not exposed to the network")

		return srv.Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "Listen address (loopback only)")
}
