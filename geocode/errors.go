// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// GeocodingError describes why a remote lookup failed.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies remote geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown is an unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit means the provider throttled the request.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded means the key is exhausted or not authorized.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout means the request did not complete in time.
	ErrorTypeTimeout
	// ErrorTypeNotFound means the provider returned no match.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest means the provider rejected the query.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError is a transport or upstream availability failure.
	ErrorTypeNetworkError
	// ErrorTypeNoAPIKey means no credential was supplied.
	ErrorTypeNoAPIKey
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:        "unknown",
	ErrorTypeRateLimit:      "rate_limit",
	ErrorTypeQuotaExceeded:  "quota_exceeded",
	ErrorTypeTimeout:        "timeout",
	ErrorTypeNotFound:       "not_found",
	ErrorTypeInvalidRequest: "invalid_request",
	ErrorTypeNetworkError:   "network",
	ErrorTypeNoAPIKey:       "no_api_key",
}

func (t ErrorType) String() string {
	if s, ok := errorTypeNames[t]; ok {
		return s
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// ErrNoAPIKey is reported for every address of a batch started without a key.
var ErrNoAPIKey = &GeocodingError{Type: ErrorTypeNoAPIKey, Message: "No API key provided"}

func errorTypeOf(err error) (ErrorType, bool) {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type, true
	}

	return ErrorTypeUnknown, false
}

// IsRateLimitError reports whether err is a provider throttling error.
func IsRateLimitError(err error) bool {
	if t, ok := errorTypeOf(err); ok {
		return t == ErrorTypeRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether err is a quota or authorization error.
func IsQuotaExceededError(err error) bool {
	if t, ok := errorTypeOf(err); ok {
		return t == ErrorTypeQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether err is a timeout.
func IsTimeoutError(err error) bool {
	if t, ok := errorTypeOf(err); ok {
		return t == ErrorTypeTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a non-2xx provider response to a GeocodingError.
func ClassifyHTTPError(statusCode int, status string) *GeocodingError {
	msg := fmt.Sprintf("HTTP %d", statusCode)
	if status != "" {
		msg = "HTTP " + status
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return &GeocodingError{Type: ErrorTypeRateLimit, Message: msg + ": rate limit reached"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: msg + ": quota exceeded or access denied"}
	case http.StatusBadRequest:
		return &GeocodingError{Type: ErrorTypeInvalidRequest, Message: msg + ": invalid request"}
	case http.StatusNotFound:
		return &GeocodingError{Type: ErrorTypeNotFound, Message: msg + ": location not found"}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &GeocodingError{Type: ErrorTypeNetworkError, Message: msg + ": service unavailable"}
	default:
		return &GeocodingError{Type: ErrorTypeUnknown, Message: msg}
	}
}

// ClassifyTransportError wraps an error returned by the HTTP client.
func ClassifyTransportError(err error) *GeocodingError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &GeocodingError{Type: ErrorTypeTimeout, Message: "geocoding request timed out", Err: err}
	}

	return &GeocodingError{Type: ErrorTypeNetworkError, Message: "geocoding request failed", Err: err}
}
