// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{name: "comma", text: "name,postcode\nA,10115\n", want: ','},
		{name: "semicolon", text: "Name;PLZ;Ort\nMüller, Hans;10115;Berlin\n", want: ';'},
		{name: "tab", text: "name\tpostcode\nA\t10115\n", want: '\t'},
		{name: "quoted commas in semicolon file", text: "name;address\n\"A\";\"Hauptstr. 1, 10115 Berlin\"\n", want: ';'},
		{name: "single column defaults to comma", text: "name\nA\n", want: ','},
		{name: "empty", text: "", want: ','},
		{name: "tie prefers comma", text: "a,b;c\n1,2;3\n", want: ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDelimiter(tt.text))
		})
	}
}

func TestParse(t *testing.T) {
	got := Parse("\uFEFFName , PLZ\nAnna,10115\n\nBen,80331\n")

	assert.Equal(t, []string{"name", "postcode"}, got.Headers)
	assert.Empty(t, got.Warnings)

	want := []Row{
		{Number: 2, Fields: map[string]string{"name": "Anna", "postcode": "10115"}},
		{Number: 3, Fields: map[string]string{"name": "Ben", "postcode": "80331"}},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Errorf("Parse() rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBOMQuotedHeader(t *testing.T) {
	got := Parse("\uFEFF\"Name\",\"PLZ\"\nAnna,10115\n")

	assert.Equal(t, []string{"name", "postcode"}, got.Headers)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Anna", got.Rows[0].Get("name"))
	assert.Equal(t, ',', DetectDelimiter("\uFEFF\"a\",\"b\"\n1,2\n"))
}

func TestParseSemicolonGermanHeaders(t *testing.T) {
	comma := Parse("name,postcode,street,city,team\nMax Mustermann,10115,Hauptstr. 1,Berlin,Engineering\n")
	semicolon := Parse("Name;PLZ;Straße;Ort;Team\nMax Mustermann;10115;Hauptstr. 1;Berlin;Engineering\n")

	if diff := cmp.Diff(comma, semicolon); diff != "" {
		t.Errorf("semicolon German input differs (-comma +semicolon):\n%s", diff)
	}
}

func TestParsePadAndTruncate(t *testing.T) {
	got := Parse("name,postcode,team\nAnna,10115\nBen,80331,Sales,extra\n")

	require.Len(t, got.Rows, 2)
	assert.Equal(t, map[string]string{"name": "Anna", "postcode": "10115", "team": ""}, got.Rows[0].Fields)
	assert.Equal(t, map[string]string{"name": "Ben", "postcode": "80331", "team": "Sales"}, got.Rows[1].Fields)
	assert.Equal(t, []string{
		"Row 2: expected 3 fields but found 2; missing fields left empty",
		"Row 3: expected 3 fields but found 4; extra fields ignored",
	}, got.Warnings)
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "name,postcode\n", "name,postcode\n\n\n"} {
		got := Parse(text)
		assert.Empty(t, got.Rows, "input %q", text)
		assert.Empty(t, got.Warnings, "input %q", text)
	}
}

func TestParseDuplicateColumn(t *testing.T) {
	got := Parse("PLZ,Postleitzahl,name\n10115,99999,A\n")

	require.Len(t, got.Rows, 1)
	assert.Equal(t, "10115", got.Rows[0].Get("postcode"))
	assert.Equal(t, []string{`Row 1: duplicate column "postcode" ignored`}, got.Warnings)
}

func TestParseSkipsDelimiterOnlyRows(t *testing.T) {
	got := Parse("name;team\n;\nAnna;Sales\n")

	require.Len(t, got.Rows, 1)
	assert.Equal(t, 2, got.Rows[0].Number)
}

func TestFromRecords(t *testing.T) {
	got := FromRecords([][]string{{"Name", "Team"}, {"Anna", "Sales"}})

	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Sales", got.Rows[0].Get("team"))
	assert.Empty(t, FromRecords(nil).Rows)
}
