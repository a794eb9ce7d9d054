// Package tracking forwards page views and events from the server to the
// gtag.js client of one UI. It is split by concern:
//
//   - settings.go: declarative Settings, LogLevel and SendMode.
//   - configuration.go: Configuration and the merged create fields.
//   - resolve.go: Layout registration and Resolve.
//   - host.go: the Host collaborators a Tracker calls into.
//   - tracker.go: command queue, flush cycle and the send primitive.
//   - init.go: one-time client bootstrap and ConfigCommand.
//   - errors.go: configuration error types and helpers.
//   - events.go, eventpub_memory.go: lifecycle events.
//   - metrics.go: Prometheus counters.
//
// A Tracker is owned by exactly one UI and is not safe for concurrent use;
// the owning UI serializes access per request turn.
package tracking
