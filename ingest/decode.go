// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// MaxFileSize is the largest input file accepted.
const MaxFileSize = 5 * 1024 * 1024

// ErrFileTooLarge is returned for inputs over MaxFileSize.
var ErrFileTooLarge = errors.New("file exceeds the 5 MB limit")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadFileLimited reads path, refusing files over MaxFileSize.
func ReadFileLimited(path string) ([]byte, error) {
	fh, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer fh.Close()

	return ReadLimited(fh)
}

// ReadLimited reads r, refusing content over MaxFileSize.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// Decode converts raw CSV bytes to text. UTF-16 with a byte order mark is
// decoded, a UTF-8 BOM is dropped, and input that is not valid UTF-8 is read
// as Windows-1252, the encoding of German Excel exports.
func Decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding UTF-16: %w", err)
		}

		data = decoded
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding Windows-1252: %w", err)
		}

		data = decoded
	}

	return strings.TrimPrefix(string(data), utf8BOM), nil
}
