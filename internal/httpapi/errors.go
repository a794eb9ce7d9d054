package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gatrack/internal/tracking"
	"gatrack/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		// Tracker configuration errors are server-side faults.
		return http.StatusInternalServerError
	}
}

// errorReason labels a failed turn for metrics.
func errorReason(err error) string {
	switch {
	case tracking.IsEmptyChain(err):
		return "empty_chain"
	case tracking.IsNotConfigurable(err):
		return "not_configurable"
	case tracking.IsMissingTrackingID(err):
		return "missing_tracking_id"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	var he HTTPError
	if errors.As(err, &he) {
		return itoa(he.StatusCode())
	}
	return "internal"
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
