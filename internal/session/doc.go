// Package session holds the per-tab UI state the tracker runs in: the active
// layout chain, the deferred before-response callbacks and the buffer of
// client calls returned at the end of each request turn.
package session
