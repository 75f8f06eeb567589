// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage persists small string values by key. Backends keep
// everything local to the machine.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is a string key-value store. Get reports false for an absent key.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Backend names.
const (
	BackendFile   = "file"
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
)

// DefaultPassphrase encrypts persisted state when HWTO_PASSPHRASE is unset.
const DefaultPassphrase = "hwto-v1"

// Config selects and configures a backend.
type Config struct {
	Backend    string
	Dir        string
	Passphrase string
	Plaintext  bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured backend, wrapped in encryption unless Plaintext
// is set.
func Open(cfg Config) (KV, io.Closer, error) {
	var (
		kv     KV
		closer io.Closer = nopCloser{}
	)

	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = BackendFile
	}

	switch backend {
	case BackendFile:
		f, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}

		kv = f
	case BackendDuckDB:
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating data dir: %w", err)
		}

		d, err := OpenDuckDB(filepath.Join(cfg.Dir, "hwto.duckdb"))
		if err != nil {
			return nil, nil, err
		}

		kv, closer = d, d
	case BackendMemory:
		kv = NewMemory()
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q (want %s, %s or %s)",
			cfg.Backend, BackendFile, BackendDuckDB, BackendMemory)
	}

	log.Printf("storage: %s backend at %s", backend, cfg.Dir)

	if cfg.Plaintext {
		return kv, closer, nil
	}

	passphrase := cfg.Passphrase
	if passphrase == "" {
		passphrase = DefaultPassphrase
	}

	enc, err := NewEncrypted(kv, passphrase)
	if err != nil {
		return nil, nil, errors.Join(err, closer.Close())
	}

	return enc, closer, nil
}

// Memory is a map-backed KV.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements KV.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]

	return v, ok, nil
}

// Set implements KV.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

// Remove implements KV.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}
