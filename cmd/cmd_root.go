// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hwto/hwto/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

// Options shared by every command.
type Options struct {
	DataDir    string
	Backend    string
	Passphrase string
	Plaintext  bool
	Gazetteer  string
}

var rootOptions = &Options{}

var rootCmd = &cobra.Command{
	Use:   "hwto",
	Short: "how far is the office from the team",
	Long: `
hwto imports offices and employees from CSV or Excel files, places them on the
map using German postcodes, and reports how far each employee lives from their
office.

Settings may also come from the environment or a .env file in the working
directory: HWTO_DATA_DIR, HWTO_BACKEND, HWTO_PASSPHRASE, GEOAPIFY_API_KEY and
GOOGLE_MAPS_API_KEY.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		fromEnv(cmd, "data-dir", "HWTO_DATA_DIR", &rootOptions.DataDir)
		fromEnv(cmd, "backend", "HWTO_BACKEND", &rootOptions.Backend)
		fromEnv(cmd, "passphrase", "HWTO_PASSPHRASE", &rootOptions.Passphrase)

		return nil
	},
}

// fromEnv copies an environment variable into dst unless the flag was given.
func fromEnv(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}

	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func userAgent() string {
	return fmt.Sprintf("hwto/%s", Version)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(
		&rootOptions.DataDir,
		"data-dir",
		defaultDataDir(),
		"Directory holding the persisted offices and employees",
	)
	flags.StringVar(
		&rootOptions.Backend,
		"backend",
		storage.BackendFile,
		"Storage backend: file, duckdb or memory",
	)
	flags.StringVar(
		&rootOptions.Passphrase,
		"passphrase",
		"",
		"Passphrase encrypting the persisted data",
	)
	flags.BoolVar(
		&rootOptions.Plaintext,
		"plaintext",
		false,
		"Store data unencrypted",
	)
	flags.StringVar(
		&rootOptions.Gazetteer,
		"gazetteer",
		"",
		"CSV file (postcode,lat,lon,place) replacing the bundled postcode table",
	)
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hwto"
	}

	return filepath.Join(dir, "hwto")
}
