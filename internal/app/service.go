// Package app wires the session store, the route registry and the
// navigation trigger into the operations exposed over HTTP.
package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"gatrack/internal/navigation"
	"gatrack/internal/registry"
	"gatrack/internal/session"
	"gatrack/internal/tracking"
	"gatrack/pkg/types"
)

var uisOpen = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "gatrack",
	Subsystem: "session",
	Name:      "uis_open",
	Help:      "Number of open UIs",
})

var uisExpired = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "gatrack",
	Subsystem: "session",
	Name:      "uis_expired_total",
	Help:      "Number of UIs closed for being idle",
})

func init() {
	prometheus.MustRegister(uisOpen, uisExpired)
}

// Config holds the Service dependencies.
type Config struct {
	Registry   *registry.Registry
	Production bool
	Logger     *zerolog.Logger
	Publisher  tracking.EventPublisher
	// IdleTTL closes UIs without a turn for this long. Zero keeps UIs until
	// they are closed explicitly.
	IdleTTL time.Duration
}

// Service runs request turns against open UIs.
type Service struct {
	store      *session.Store
	reg        *registry.Registry
	production bool
	idleTTL    time.Duration
	log        zerolog.Logger
}

// New creates a Service and installs automatic page view tracking on every
// UI it opens.
func New(cfg Config) *Service {
	s := &Service{
		store:      session.NewStore(tracking.Options{Logger: cfg.Logger, Publisher: cfg.Publisher}),
		reg:        cfg.Registry,
		production: cfg.Production,
		idleTTL:    cfg.IdleTTL,
		log:        zerolog.Nop(),
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	}
	navigation.New(cfg.Logger).Install(s.store)
	return s
}

// Ready reports whether routes are registered.
func (s *Service) Ready() bool { return s.reg != nil }

// OpenUI opens a new UI and returns its id.
func (s *Service) OpenUI() string {
	u := s.store.Open(s.production)
	uisOpen.Set(float64(s.store.Len()))
	return u.ID()
}

// CloseUI closes the UI with the given id.
func (s *Service) CloseUI(id string) error {
	if !s.store.Close(id) {
		return ErrUINotFound(id)
	}
	uisOpen.Set(float64(s.store.Len()))
	return nil
}

// OpenUIs returns the number of open UIs.
func (s *Service) OpenUIs() int { return s.store.Len() }

// RunExpiry closes idle UIs until ctx is done. It returns at once when no
// IdleTTL is configured.
func (s *Service) RunExpiry(ctx context.Context) {
	interval := s.idleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	s.store.RunExpiry(ctx, interval, s.idleTTL, func(n int) {
		uisExpired.Add(float64(n))
		uisOpen.Set(float64(s.store.Len()))
		s.log.Info().Int("expired", n).Msg("idle uis closed")
	})
}

// Navigate activates the route at req.Path and returns the calls of the turn.
func (s *Service) Navigate(ctx context.Context, id string, req types.NavigateRequest) (types.TurnResponse, error) {
	chain, err := s.chain(req.Path)
	if err != nil {
		return types.TurnResponse{}, err
	}
	location := navigation.Location(req.Path, url.Values(req.Query))
	return s.turn(ctx, id, func(u *session.UI) error {
		u.Navigate(chain, location)
		return nil
	})
}

// PageView queues a manual page view on the UI's tracker.
func (s *Service) PageView(ctx context.Context, id string, req types.PageViewRequest) (types.TurnResponse, error) {
	if strings.TrimSpace(req.Location) == "" && !req.Fields.Has("page_location") {
		return types.TurnResponse{}, badRequestError{msg: "location is required"}
	}
	return s.turn(ctx, id, func(u *session.UI) error {
		u.Tracker().SendPageView(req.Location, req.Fields)
		return nil
	})
}

// Command queues an arbitrary gtag command on the UI's tracker.
func (s *Service) Command(ctx context.Context, id string, req types.CommandRequest) (types.TurnResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return types.TurnResponse{}, badRequestError{msg: "name is required"}
	}
	return s.turn(ctx, id, func(u *session.UI) error {
		u.Tracker().SendGenericCommand(req.Name, req.Fields, req.Args...)
		return nil
	})
}

// RenderPage opens a UI, navigates it to path and returns the first turn.
// The UI stays open for later turns unless the navigation fails.
func (s *Service) RenderPage(ctx context.Context, path string, query url.Values) (types.TurnResponse, error) {
	if _, err := s.chain(path); err != nil {
		return types.TurnResponse{}, err
	}
	id := s.OpenUI()
	resp, err := s.Navigate(ctx, id, types.NavigateRequest{Path: path, Query: query})
	if err != nil {
		_ = s.CloseUI(id)
		return types.TurnResponse{}, err
	}
	return resp, nil
}

func (s *Service) chain(path string) ([]*tracking.Layout, error) {
	if s.reg == nil {
		return nil, ErrRouteNotFound(path)
	}
	chain, ok := s.reg.Chain(path)
	if !ok {
		return nil, ErrRouteNotFound(path)
	}
	return chain, nil
}

func (s *Service) turn(ctx context.Context, id string, fn func(*session.UI) error) (types.TurnResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.TurnResponse{}, err
	}
	u, ok := s.store.Get(id)
	if !ok {
		return types.TurnResponse{}, ErrUINotFound(id)
	}
	calls, err := u.Turn(fn)
	if err != nil {
		if session.IsClosed(err) {
			return types.TurnResponse{}, ErrUINotFound(id)
		}
		s.log.Error().Err(err).Str("ui_id", id).Msg("turn failed")
		return types.TurnResponse{}, fmt.Errorf("ui %s: %w", id, err)
	}
	if calls == nil {
		calls = []types.ClientCall{}
	}
	return types.TurnResponse{UIID: id, Calls: calls, Initialized: u.TrackerInitialized()}, nil
}
