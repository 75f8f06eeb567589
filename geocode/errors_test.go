// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkFunc(tt.err))
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "typed", err: &GeocodingError{Type: ErrorTypeRateLimit, Message: "slow down"}, want: true},
		{name: "wrapped typed", err: fmt.Errorf("item 3: %w", ClassifyHTTPError(429, "")), want: true},
		{name: "message rate limit", err: errors.New("rate limit exceeded"), want: true},
		{name: "message too many requests", err: errors.New("too many requests"), want: true},
		{name: "message 429", err: errors.New("geoapify returned status 429"), want: true},
		{name: "other type", err: &GeocodingError{Type: ErrorTypeNotFound, Message: "429"}, want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
	}, IsRateLimitError)
}

func TestIsQuotaExceededError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "typed", err: &GeocodingError{Type: ErrorTypeQuotaExceeded}, want: true},
		{name: "google status", err: errors.New("google maps status: OVER_QUERY_LIMIT"), want: true},
		{name: "message", err: errors.New("quota exceeded"), want: true},
		{name: "other type", err: &GeocodingError{Type: ErrorTypeRateLimit}, want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
	}, IsQuotaExceededError)
}

func TestIsTimeoutError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{name: "typed", err: &GeocodingError{Type: ErrorTypeTimeout}, want: true},
		{name: "classified deadline", err: ClassifyTransportError(context.DeadlineExceeded), want: true},
		{name: "message timeout", err: errors.New("request timeout after 10 seconds"), want: true},
		{name: "message deadline", err: errors.New("context deadline exceeded"), want: true},
		{name: "other type", err: &GeocodingError{Type: ErrorTypeNotFound}, want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
	}, IsTimeoutError)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		statusCode int
		wantType   ErrorType
	}{
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusUnauthorized, ErrorTypeQuotaExceeded},
		{http.StatusForbidden, ErrorTypeQuotaExceeded},
		{http.StatusBadRequest, ErrorTypeInvalidRequest},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusServiceUnavailable, ErrorTypeNetworkError},
		{http.StatusBadGateway, ErrorTypeNetworkError},
		{http.StatusGatewayTimeout, ErrorTypeNetworkError},
		{http.StatusInternalServerError, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			got := ClassifyHTTPError(tt.statusCode, "")
			assert.Equal(t, tt.wantType, got.Type)
			assert.Contains(t, got.Error(), fmt.Sprintf("HTTP %d", tt.statusCode))
		})
	}

	assert.Equal(t, "HTTP 401 Unauthorized: quota exceeded or access denied",
		ClassifyHTTPError(401, "401 Unauthorized").Error())
}

func TestClassifyTransportError(t *testing.T) {
	inner := errors.New("connection refused")
	got := ClassifyTransportError(inner)
	assert.Equal(t, ErrorTypeNetworkError, got.Type)
	assert.ErrorIs(t, got, inner)
	assert.Equal(t, "geocoding request failed: connection refused", got.Error())
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "rate_limit", ErrorTypeRateLimit.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}
