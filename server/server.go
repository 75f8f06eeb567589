// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the stores as a local JSON API.
package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hwto/hwto/ingest"
	"github.com/hwto/hwto/roster"
)

// DefaultAddr is the listen address of `hwto serve`.
const DefaultAddr = "localhost:8080"

// ErrNotLoopback rejects listen addresses reachable from other machines.
var ErrNotLoopback = errors.New("server only listens on loopback addresses")

type Server struct {
	offices   *roster.Store[roster.Office]
	employees *roster.Store[roster.Employee]
	pipeline  *ingest.Pipeline
}

func NewServer(offices *roster.Store[roster.Office], employees *roster.Store[roster.Employee], pipeline *ingest.Pipeline) *Server {
	return &Server{
		offices:   offices,
		employees: employees,
		pipeline:  pipeline,
	}
}

// Router returns the API routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	api.GET("/offices", s.listOffices)
	api.GET("/employees", s.listEmployees)
	api.GET("/distances", s.listDistances)
	api.GET("/summary", s.getSummary)
	api.GET("/postcodes/:postcode", s.lookupPostcode)
	api.POST("/import/offices", s.importOffices)
	api.POST("/import/employees", s.importEmployees)
	api.DELETE("/offices", s.clearOffices)
	api.DELETE("/employees", s.clearEmployees)

	return r
}

// Run serves the API on addr until it fails.
func (s *Server) Run(addr string) error {
	if err := CheckLoopback(addr); err != nil {
		return err
	}

	log.Printf("Serving API on http://%s/api", addr)

	return s.Router().Run(addr)
}

// CheckLoopback accepts "localhost" and loopback IP addresses only.
func CheckLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}

	if host == "localhost" {
		return nil
	}

	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}

	return fmt.Errorf("%w: %q", ErrNotLoopback, addr)
}

func (s *Server) listOffices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, s.offices.All())
}

type employeesResponse struct {
	Employees   []roster.Employee `json:"employees"`
	Teams       []string          `json:"teams"`
	Departments []string          `json:"departments"`
	Offices     []string          `json:"offices"`
}

func (s *Server) listEmployees(ctx *gin.Context) {
	var filter roster.EmployeeFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	all := s.employees.All()

	ctx.JSON(http.StatusOK, employeesResponse{
		Employees:   filter.Filter(all),
		Teams:       roster.Teams(all),
		Departments: roster.Departments(all),
		Offices:     roster.Offices(all),
	})
}

func (s *Server) listDistances(ctx *gin.Context) {
	var filter roster.EmployeeFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	road, err := boolQuery(ctx, "road")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	nearest, err := boolQuery(ctx, "nearest")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	employees := filter.Filter(s.employees.All())
	offices := s.offices.All()

	pairings := roster.Pairings(employees, offices, road)
	if nearest {
		pairings = roster.NearestPairings(employees, offices, road)
	}

	ctx.JSON(http.StatusOK, pairings)
}

func boolQuery(ctx *gin.Context, name string) (bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter %q", name, raw)
	}

	return v, nil
}

func (s *Server) getSummary(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, roster.Summarize(s.offices.All(), s.employees.All()))
}

func (s *Server) lookupPostcode(ctx *gin.Context) {
	res := s.pipeline.Local.GeocodeByPostcode(ctx.Param("postcode"))
	if !res.Found() {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "postcode not found", "postcode": res.Postcode})

		return
	}

	ctx.JSON(http.StatusOK, res)
}

type importResponse[T any] struct {
	Result ingest.CsvParseResult[T] `json:"result"`
	Added  int                      `json:"added"`
	DryRun bool                     `json:"dryRun,omitempty"`
}

func (s *Server) importOffices(ctx *gin.Context) {
	text, ok := readCSVBody(ctx)
	if !ok {
		return
	}

	result := s.pipeline.ParseOffices(text)
	respondImport(ctx, s.offices, roster.CollectionOffices, roster.MaxOffices, result)
}

func (s *Server) importEmployees(ctx *gin.Context) {
	text, ok := readCSVBody(ctx)
	if !ok {
		return
	}

	result := s.pipeline.ParseEmployees(text)
	respondImport(ctx, s.employees, roster.CollectionEmployees, roster.MaxEmployees, result)
}

func readCSVBody(ctx *gin.Context) (string, bool) {
	data, err := ingest.ReadLimited(ctx.Request.Body)
	if errors.Is(err, ingest.ErrFileTooLarge) {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

		return "", false
	}

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return "", false
	}

	text, err := ingest.Decode(data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return "", false
	}

	return text, true
}

func respondImport[T roster.Record[T]](ctx *gin.Context, store *roster.Store[T], collection string, limit int, result ingest.CsvParseResult[T]) {
	dryRun, err := boolQuery(ctx, "dry_run")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if dryRun {
		if err := roster.CheckCapacity(collection, store.Len(), len(result.Valid), limit); err != nil {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "result": result})

			return
		}

		ctx.JSON(http.StatusOK, importResponse[T]{Result: result, DryRun: true})

		return
	}

	added, err := store.AddWithinLimit(collection, limit, result.Valid)

	var capErr *roster.CapacityError
	if errors.As(err, &capErr) {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "result": result})

		return
	}

	if err != nil {
		log.Printf("import %s: %v", collection, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist " + collection})

		return
	}

	ctx.JSON(http.StatusOK, importResponse[T]{Result: result, Added: added})
}

func (s *Server) clearOffices(ctx *gin.Context) {
	clearStore(ctx, s.offices, roster.CollectionOffices)
}

func (s *Server) clearEmployees(ctx *gin.Context) {
	clearStore(ctx, s.employees, roster.CollectionEmployees)
}

func clearStore[T roster.Record[T]](ctx *gin.Context, store *roster.Store[T], collection string) {
	if err := store.Clear(); err != nil {
		log.Printf("clear %s: %v", collection, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear " + collection})

		return
	}

	ctx.Status(http.StatusNoContent)
}
