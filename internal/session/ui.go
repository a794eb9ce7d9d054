package session

import (
	"sync"
	"time"

	"gatrack/internal/tracking"
	"gatrack/pkg/types"
)

// NavigationEvent describes a completed navigation of a UI.
type NavigationEvent struct {
	UI *UI
	// Chain is the active layout chain, innermost first.
	Chain []*tracking.Layout
	// Location is the navigated path including query parameters.
	Location string
}

// UI is the server-side state of one browser tab. All methods except ID,
// ProductionMode, Turn and Close must be called from inside Turn.
type UI struct {
	id         string
	production bool
	opts       tracking.Options

	mu        sync.Mutex
	chain     []*tracking.Layout
	listeners []func(NavigationEvent)
	deferred  []func() error
	calls     []types.ClientCall
	loaded    map[string]struct{}
	tracker   *tracking.Tracker
	closed    bool
	lastUsed  time.Time
}

func newUI(id string, production bool, opts tracking.Options) *UI {
	return &UI{id: id, production: production, opts: opts, loaded: make(map[string]struct{}), lastUsed: time.Now()}
}

func (u *UI) ID() string                      { return u.id }
func (u *UI) ProductionMode() bool            { return u.production }
func (u *UI) ActiveChain() []*tracking.Layout { return u.chain }

// Tracker returns the UI's tracker, creating it on first use.
func (u *UI) Tracker() *tracking.Tracker {
	if u.tracker == nil {
		u.tracker = tracking.NewWithOptions(u, u.opts)
	}
	return u.tracker
}

// TrackerInitialized reports whether the UI's tracker exists and has
// bootstrapped the client. Safe to call outside a turn.
func (u *UI) TrackerInitialized() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tracker != nil && u.tracker.IsInitialized()
}

// ExecuteJS buffers a script call for the current turn's response.
func (u *UI) ExecuteJS(script string, args ...any) {
	u.calls = append(u.calls, types.ClientCall{Kind: types.CallExecute, Script: script, Args: args})
}

// AddJavaScript buffers a script load. A URL is loaded at most once per UI.
func (u *UI) AddJavaScript(url string, mode types.LoadMode) {
	if _, ok := u.loaded[url]; ok {
		return
	}
	u.loaded[url] = struct{}{}
	u.calls = append(u.calls, types.ClientCall{Kind: types.CallLoadScript, URL: url, Mode: mode})
}

// BeforeClientResponse registers fn to run once at the end of the current
// turn. Callbacks run in registration order; callbacks registered while the
// queue drains run in the same turn.
func (u *UI) BeforeClientResponse(fn func() error) {
	u.deferred = append(u.deferred, fn)
}

// AddAfterNavigationListener registers fn for every completed navigation.
func (u *UI) AddAfterNavigationListener(fn func(NavigationEvent)) {
	u.listeners = append(u.listeners, fn)
}

// Navigate activates chain and notifies the navigation listeners.
func (u *UI) Navigate(chain []*tracking.Layout, location string) {
	u.chain = append([]*tracking.Layout(nil), chain...)
	ev := NavigationEvent{UI: u, Chain: u.chain, Location: location}
	for _, fn := range u.listeners {
		fn(ev)
	}
}

// Turn runs fn as one request turn and returns the client calls produced by
// it. Turns of the same UI never overlap.
func (u *UI) Turn(fn func(*UI) error) ([]types.ClientCall, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return nil, errClosed
	}
	u.lastUsed = time.Now()
	if fn != nil {
		if err := fn(u); err != nil {
			u.reset()
			return nil, err
		}
	}
	return u.endTurn()
}

// endTurn drains the deferred callbacks and hands out the buffered calls.
// The first callback error aborts the turn and discards its calls.
func (u *UI) endTurn() ([]types.ClientCall, error) {
	for len(u.deferred) > 0 {
		fn := u.deferred[0]
		u.deferred = u.deferred[1:]
		if err := fn(); err != nil {
			u.reset()
			return nil, err
		}
	}
	calls := u.calls
	u.calls = nil
	return calls, nil
}

// reset drops the deferred tasks and calls of an aborted turn.
func (u *UI) reset() {
	u.deferred = nil
	u.calls = nil
	if u.tracker != nil {
		u.tracker.AbortCycle()
	}
}

// idleSince reports whether the UI has not started a turn since t. A UI
// busy in a turn is never idle.
func (u *UI) idleSince(t time.Time) bool {
	if !u.mu.TryLock() {
		return false
	}
	defer u.mu.Unlock()
	return u.lastUsed.Before(t)
}

// Close releases the tracker and pending state. Later turns fail.
func (u *UI) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	u.tracker = nil
	u.listeners = nil
	u.chain = nil
	u.reset()
}
