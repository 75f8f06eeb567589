// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"strings"

	"github.com/hwto/hwto/utils/textutils"
)

// Canonical column names.
const (
	ColName           = "name"
	ColPostcode       = "postcode"
	ColStreet         = "street"
	ColCity           = "city"
	ColAddress        = "address"
	ColTeam           = "team"
	ColDepartment     = "department"
	ColRole           = "role"
	ColAssignedOffice = "assignedoffice"
)

// headerAliases maps lowercased header spellings, German and English, to the
// canonical column names.
var headerAliases = map[string]string{
	"strasse":        ColStreet,
	"straße":         ColStreet,
	"str":            ColStreet,
	"street":         ColStreet,
	"plz":            ColPostcode,
	"postleitzahl":   ColPostcode,
	"zip":            ColPostcode,
	"postcode":       ColPostcode,
	"postalcode":     ColPostcode,
	"stadt":          ColCity,
	"ort":            ColCity,
	"city":           ColCity,
	"name":           ColName,
	"adresse":        ColAddress,
	"anschrift":      ColAddress,
	"address":        ColAddress,
	"team":           ColTeam,
	"abteilung":      ColDepartment,
	"department":     ColDepartment,
	"rolle":          ColRole,
	"role":           ColRole,
	"buero":          ColAssignedOffice,
	"büro":           ColAssignedOffice,
	"office":         ColAssignedOffice,
	"assignedoffice": ColAssignedOffice,
}

var headerSeparators = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "")

// CanonicalHeader maps a raw header to its canonical column name. Unknown
// headers are returned trimmed and lowercased.
func CanonicalHeader(header string) string {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF")))

	candidates := []string{
		normalized,
		textutils.LowerASCIIFolding(normalized),
		textutils.GermanFolding(normalized),
		headerSeparators.Replace(textutils.GermanFolding(normalized)),
	}

	for _, c := range candidates {
		if canonical, ok := headerAliases[c]; ok {
			return canonical
		}
	}

	return normalized
}
