// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides utility functions for working with HTTP.
package httputils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

/////////////////////////////////////////
/// RoundTrippers

// Redacted replaces secret query parameters in traces.
const Redacted = "REDACTED"

// LoggingRoundTripper dumps requests and responses to Writer. Query
// parameters named in RedactParams are masked in the dump only.
type LoggingRoundTripper struct {
	Transport    http.RoundTripper
	Writer       io.Writer
	DumpBody     bool
	RedactParams []string
}

// NewLoggingRoundTripper wraps transport, masking the API key parameters used
// by the geocoding providers.
func NewLoggingRoundTripper(transport http.RoundTripper, w io.Writer) *LoggingRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &LoggingRoundTripper{
		Transport:    transport,
		Writer:       w,
		DumpBody:     true,
		RedactParams: []string{"apiKey", "key"},
	}
}

// reduce the content of the lines.
func abbreviate(lines []string, prefix rune) []string {
	const maxLines, maxChars = 2048, 512

	for i, line := range lines {
		if i >= maxLines {
			break
		}

		lines[i] = fmt.Sprintf("%c %s", prefix, line)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines = append(lines, "…")
	}

	for i, line := range lines {
		if len(line) > maxChars {
			lines[i] = line[0:maxChars] + "…"
		}
	}

	return lines
}

func (t *LoggingRoundTripper) redact(req *http.Request) *http.Request {
	if len(t.RedactParams) == 0 || req.URL.RawQuery == "" {
		return req
	}

	q := req.URL.Query()
	changed := false

	for _, p := range t.RedactParams {
		if q.Has(p) {
			q.Set(p, Redacted)

			changed = true
		}
	}

	if !changed {
		return req
	}

	clone := req.Clone(req.Context())
	clone.URL.RawQuery = q.Encode()

	return clone
}

func (t *LoggingRoundTripper) dumpRequest(req *http.Request) error {
	dump, err := httputil.DumpRequestOut(t.redact(req), req.Body != nil)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines := abbreviate(strings.Split(string(dump), "\n"), '>')
	lines = append(lines, "")
	_, err = fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

func (t *LoggingRoundTripper) dumpResponse(resp *http.Response, duration time.Duration) error {
	dump, err := httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines := abbreviate(strings.Split(string(dump), "\n"), '<')

	_, err = fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n", duration)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines = append(lines, "")
	_, err = fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Writer == nil {
		return t.Transport.RoundTrip(req)
	}

	if err := t.dumpRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if err := t.dumpResponse(resp, time.Since(start)); err != nil {
		return nil, err
	}

	return resp, nil
}

// AppendRequestHeadersRoundTripper adds headers to the request.
type AppendRequestHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *AppendRequestHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}

	return t.Transport.RoundTrip(req)
}

// NewClient builds the client used for remote geocoding: a User-Agent header
// and, when trace is non-nil, a redacting dump of every exchange. Bodies are
// dumped only with dumpBody.
func NewClient(userAgent string, timeout time.Duration, trace io.Writer, dumpBody bool) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport
	if trace != nil {
		lrt := NewLoggingRoundTripper(transport, trace)
		lrt.DumpBody = dumpBody
		transport = lrt
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &AppendRequestHeadersRoundTripper{
			Transport: transport,
			Headers:   map[string]string{"User-Agent": userAgent},
		},
	}
}
