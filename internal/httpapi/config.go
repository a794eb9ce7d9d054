package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes configures the maximum request body size. Non-positive
// values restore the 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// turnTimeout bounds a single UI turn. Zero means no timeout beyond the
// server and connection timeouts.
var turnTimeout time.Duration

// SetTurnTimeout sets the per-turn timeout (0 disables).
func SetTurnTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	turnTimeout = d
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

func corsDefaults() (origins, methods, headers []string) {
	origins, methods, headers = corsAllowedOrigins, corsAllowedMethods, corsAllowedHeaders
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(headers) == 0 {
		headers = []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"}
	}
	return origins, methods, headers
}
