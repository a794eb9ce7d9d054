// Package navigation sends automatic page views for completed navigations.
package navigation

import (
	"net/url"

	"github.com/rs/zerolog"

	"gatrack/internal/session"
	"gatrack/internal/tracking"
	"gatrack/pkg/types"
)

// PageViewSender is the part of the tracker the trigger needs.
type PageViewSender interface {
	IsInitialized() bool
	SendPageView(location string, fields *types.Fields)
}

// Trigger tracks a page view after every navigation that is neither
// ignored nor unconfigurable.
type Trigger struct {
	log zerolog.Logger
}

// New creates a Trigger. A nil logger disables logging.
func New(log *zerolog.Logger) *Trigger {
	t := &Trigger{log: zerolog.Nop()}
	if log != nil {
		t.log = *log
	}
	return t
}

// Install attaches the trigger to every UI the store opens.
func (t *Trigger) Install(store *session.Store) {
	store.OnCreate(func(u *session.UI) {
		u.AddAfterNavigationListener(t.AfterNavigation)
	})
}

// AfterNavigation handles one completed navigation.
func (t *Trigger) AfterNavigation(ev session.NavigationEvent) {
	tracker := ev.UI.Tracker()
	if !ShouldTrack(tracker, ev.Chain) {
		t.log.Debug().Str("ui_id", ev.UI.ID()).Str("location", ev.Location).Msg("page view skipped")
		return
	}
	tracker.SendPageView(ev.Location, nil)
}

// ShouldTrack reports whether a navigation to chain gets an automatic page
// view. Any ignoring layout suppresses it. Otherwise the tracker must already
// be initialized or the root layout must be configurable; an empty chain is
// never tracked.
func ShouldTrack(tracker PageViewSender, chain []*tracking.Layout) bool {
	if len(chain) == 0 {
		return false
	}
	for _, l := range chain {
		if l != nil && l.IgnorePageView {
			return false
		}
	}
	if tracker.IsInitialized() {
		return true
	}
	root, _ := tracking.RootLayout(chain)
	return root.Configurable()
}

// Location joins a path and its query parameters.
func Location(path string, query url.Values) string {
	if q := query.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}
