// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/hwto/hwto/gazetteer"
	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/ingest"
	"github.com/hwto/hwto/roster"
	"github.com/hwto/hwto/storage"
)

// workspace is the state every command works against.
type workspace struct {
	offices   *roster.Store[roster.Office]
	employees *roster.Store[roster.Employee]
	local     *geocode.Local
	pipeline  *ingest.Pipeline
	closer    io.Closer
}

// openWorkspace opens storage and loads both collections. With seed, a
// collection that was never persisted is filled with demo data.
func openWorkspace(opts *Options, seed bool) (*workspace, error) {
	local, err := openGeocoder(opts.Gazetteer)
	if err != nil {
		return nil, err
	}

	kv, closer, err := storage.Open(storage.Config{
		Backend:    opts.Backend,
		Dir:        opts.DataDir,
		Passphrase: opts.Passphrase,
		Plaintext:  opts.Plaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	ws := &workspace{
		offices:   roster.NewOfficeStore(kv),
		employees: roster.NewEmployeeStore(kv),
		local:     local,
		pipeline:  ingest.NewPipeline(local),
		closer:    closer,
	}

	ws.offices.Load()
	ws.employees.Load()

	if seed {
		if err := ws.seedIfEmpty(); err != nil {
			ws.Close()

			return nil, err
		}
	}

	return ws, nil
}

func openGeocoder(path string) (*geocode.Local, error) {
	if path == "" {
		local, err := geocode.NewDefaultLocal()
		if err != nil {
			return nil, fmt.Errorf("loading postcode table: %w", err)
		}

		return local, nil
	}

	gaz, err := gazetteer.LoadFile(path)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d postcodes from %s", gaz.Len(), path)

	return geocode.NewLocal(gaz), nil
}

func (ws *workspace) seedOffices() []roster.Office {
	return roster.SeedOffices(ws.pipeline.NewID)
}

func (ws *workspace) seedEmployees() []roster.Employee {
	return roster.SeedEmployees(ws.local.Gazetteer(), ws.offices.All(), ws.pipeline.NewID)
}

func (ws *workspace) seedIfEmpty() error {
	seeded, err := roster.SeedIfEmpty(ws.offices, ws.seedOffices)
	if err != nil {
		return fmt.Errorf("seeding offices: %w", err)
	}

	if seeded {
		log.Printf("No stored offices, added %d demo offices", ws.offices.Len())
	}

	seeded, err = roster.SeedIfEmpty(ws.employees, ws.seedEmployees)
	if err != nil {
		return fmt.Errorf("seeding employees: %w", err)
	}

	if seeded {
		log.Printf("No stored employees, added %d demo employees", ws.employees.Len())
	}

	return nil
}

func (ws *workspace) Close() error {
	return ws.closer.Close()
}
