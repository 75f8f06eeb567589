// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "plain", data: []byte("name\nA"), want: "name\nA"},
		{name: "utf8 bom", data: append([]byte{0xEF, 0xBB, 0xBF}, "name"...), want: "name"},
		{name: "utf16 le", data: []byte{0xFF, 0xFE, 'P', 0, 'L', 0, 'Z', 0}, want: "PLZ"},
		{name: "utf16 be", data: []byte{0xFE, 0xFF, 0, 'P', 0, 'L', 0, 'Z'}, want: "PLZ"},
		{name: "windows-1252", data: []byte{'S', 't', 'r', 'a', 0xDF, 'e', ';', 'B', 0xFC, 'r', 'o'}, want: "Straße;Büro"},
		{name: "utf8 umlaut kept", data: []byte("Köln"), want: "Köln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("name\n"))
	require.NoError(t, err)
	assert.Equal(t, "name\n", string(data))

	_, err = ReadLimited(bytes.NewReader(make([]byte, MaxFileSize+1)))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	data, err = ReadLimited(bytes.NewReader(make([]byte, MaxFileSize)))
	require.NoError(t, err)
	assert.Len(t, data, MaxFileSize)
}

func TestReadFileLimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offices.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,postcode\n"), 0o600))

	data, err := ReadFileLimited(path)
	require.NoError(t, err)
	assert.Equal(t, "name,postcode\n", string(data))

	_, err = ReadFileLimited(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
