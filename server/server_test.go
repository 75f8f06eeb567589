// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hwto/hwto/geocode"
	"github.com/hwto/hwto/ingest"
	"github.com/hwto/hwto/roster"
	"github.com/hwto/hwto/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	offices   *roster.Store[roster.Office]
	employees *roster.Store[roster.Employee]
}

func setupServerTest(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	local, err := geocode.NewDefaultLocal()
	require.NoError(t, err)

	n := 0
	pipeline := ingest.NewPipeline(local)
	pipeline.NewID = func() string {
		n++

		return "id-" + strconv.Itoa(n)
	}

	offices := roster.NewOfficeStore(storage.NewMemory())
	employees := roster.NewEmployeeStore(storage.NewMemory())

	return &testServer{
		router:    NewServer(offices, employees, pipeline).Router(),
		offices:   offices,
		employees: employees,
	}
}

func (ts *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

const (
	officesCSV   = "name,postcode,city\nBerlin Office,10117,Berlin\nFrankfurt HQ,60311,\n"
	employeesCSV = "name;PLZ;Straße;Team;Abteilung;Büro\n" +
		"Jürgen Müller;10115;Invalidenstr. 1;Platform;Engineering;Berlin Office\n" +
		"Anna Schmidt;60311;Zeil 5;QA;Product;Frankfurt HQ\n" +
		"Nobody;00000;;QA;;\n" +
		";10115;;QA;;\n"
)

func (ts *testServer) importBoth(t *testing.T) {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/import/offices", officesCSV)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/import/employees", employeesCSV)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestImportOfficesAPI(t *testing.T) {
	ts := setupServerTest(t)

	w := ts.do(t, http.MethodPost, "/api/import/offices", officesCSV)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[importResponse[roster.Office]](t, w)
	assert.Equal(t, 2, resp.Added)
	require.Len(t, resp.Result.Valid, 2)
	assert.Equal(t, "Frankfurt am Main", resp.Result.Valid[1].City)
	assert.Equal(t, 2, ts.offices.Len())
}

func TestImportEmployeesAPI(t *testing.T) {
	ts := setupServerTest(t)

	w := ts.do(t, http.MethodPost, "/api/import/employees", employeesCSV)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[importResponse[roster.Employee]](t, w)
	assert.Equal(t, 3, resp.Added)
	require.Len(t, resp.Result.Invalid, 1)
	assert.Equal(t, 5, resp.Result.Invalid[0].Row)

	nobody := resp.Result.Valid[2]
	assert.Equal(t, geocode.StatusFailed, nobody.GeocodeStatus)
	assert.Nil(t, nobody.Coords)
}

func TestImportDryRunAPI(t *testing.T) {
	ts := setupServerTest(t)

	w := ts.do(t, http.MethodPost, "/api/import/offices?dry_run=true", officesCSV)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[importResponse[roster.Office]](t, w)
	assert.True(t, resp.DryRun)
	assert.Len(t, resp.Result.Valid, 2)
	assert.Zero(t, ts.offices.Len())
}

func TestImportCapacityAPI(t *testing.T) {
	ts := setupServerTest(t)

	var csv bytes.Buffer
	csv.WriteString("name,postcode\n")

	for i := range roster.MaxOffices + 1 {
		fmt.Fprintf(&csv, "Office %d,10115\n", i)
	}

	w := ts.do(t, http.MethodPost, "/api/import/offices", csv.String())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "cannot import 21 offices: 0 already stored, limit is 20")
	assert.Zero(t, ts.offices.Len())
}

func TestImportTooLargeAPI(t *testing.T) {
	ts := setupServerTest(t)

	body := "name,postcode\n" + strings.Repeat("x", ingest.MaxFileSize)

	w := ts.do(t, http.MethodPost, "/api/import/employees", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestListEmployeesAPI(t *testing.T) {
	ts := setupServerTest(t)
	ts.importBoth(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all geocoded", query: "", want: []string{"Jürgen Müller", "Anna Schmidt"}},
		{name: "team", query: "?team=QA", want: []string{"Anna Schmidt"}},
		{name: "office", query: "?office=Berlin+Office", want: []string{"Jürgen Müller"}},
		{name: "search", query: "?q=mueller", want: []string{"Jürgen Müller"}},
		{name: "no match", query: "?department=Sales", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/api/employees"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[employeesResponse](t, w)

			names := []string{}
			for _, e := range resp.Employees {
				names = append(names, e.Name)
			}

			assert.Equal(t, tt.want, names)
			assert.Equal(t, []string{"Platform", "QA"}, resp.Teams)
		})
	}
}

func TestListOfficesAPI(t *testing.T) {
	ts := setupServerTest(t)
	ts.importBoth(t)

	w := ts.do(t, http.MethodGet, "/api/offices", "")
	require.Equal(t, http.StatusOK, w.Code)

	offices := decode[[]roster.Office](t, w)
	require.Len(t, offices, 2)
	assert.Equal(t, "Berlin Office", offices[0].Name)
}

func TestDistancesAPI(t *testing.T) {
	ts := setupServerTest(t)
	ts.importBoth(t)

	w := ts.do(t, http.MethodGet, "/api/distances?road=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	pairings := decode[[]roster.Pairing](t, w)
	require.Len(t, pairings, 2)

	for _, p := range pairings {
		assert.True(t, p.Assigned)
		assert.True(t, strings.HasPrefix(p.Distance, "~"), p.Distance)
	}

	w = ts.do(t, http.MethodGet, "/api/distances?road=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryAPI(t *testing.T) {
	ts := setupServerTest(t)
	ts.importBoth(t)

	w := ts.do(t, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	summary := decode[roster.Summary](t, w)
	assert.Equal(t, roster.StatusCounts{Total: 2, Success: 2}, summary.Offices)
	assert.Equal(t, roster.StatusCounts{Total: 3, Success: 2, Failed: 1}, summary.Employees)
}

func TestLookupPostcodeAPI(t *testing.T) {
	ts := setupServerTest(t)

	w := ts.do(t, http.MethodGet, "/api/postcodes/10115", "")
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[geocode.LocalResult](t, w)
	require.NotNil(t, res.Coords)
	assert.Equal(t, "Berlin", *res.City)

	w = ts.do(t, http.MethodGet, "/api/postcodes/00000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearAPI(t *testing.T) {
	ts := setupServerTest(t)
	ts.importBoth(t)

	w := ts.do(t, http.MethodDelete, "/api/employees", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, ts.employees.Len())
	assert.False(t, ts.employees.Initialized())
	assert.Equal(t, 2, ts.offices.Len())

	w = ts.do(t, http.MethodDelete, "/api/offices", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, ts.offices.Len())
}

func TestCheckLoopback(t *testing.T) {
	for _, addr := range []string{"localhost:8080", "127.0.0.1:9000", "[::1]:8080"} {
		assert.NoError(t, CheckLoopback(addr), addr)
	}

	for _, addr := range []string{"0.0.0.0:8080", ":8080", "example.com:80", "nonsense"} {
		assert.Error(t, CheckLoopback(addr), addr)
	}

	assert.ErrorIs(t, CheckLoopback("0.0.0.0:8080"), ErrNotLoopback)
}
