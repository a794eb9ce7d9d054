package registry

import (
	"fmt"
	"sort"
	"strings"

	"gatrack/internal/config"
	"gatrack/internal/tracking"
)

// Route maps a request path to a chain of layout names, innermost first.
type Route struct {
	Path    string
	Layouts []string
}

// Registry resolves request paths to active layout chains.
type Registry struct {
	layouts map[string]*tracking.Layout
	routes  map[string][]*tracking.Layout
	paths   []string
}

// New validates and indexes layouts and routes. Layout names and route
// paths must be unique and every route must reference known layouts.
func New(layouts []*tracking.Layout, routes []Route) (*Registry, error) {
	r := &Registry{
		layouts: make(map[string]*tracking.Layout, len(layouts)),
		routes:  make(map[string][]*tracking.Layout, len(routes)),
	}
	for _, l := range layouts {
		if l == nil || l.Name == "" {
			return nil, fmt.Errorf("layout without name")
		}
		if _, dup := r.layouts[l.Name]; dup {
			return nil, fmt.Errorf("duplicate layout %q", l.Name)
		}
		r.layouts[l.Name] = l
	}
	for _, rt := range routes {
		p := normalize(rt.Path)
		if _, dup := r.routes[p]; dup {
			return nil, fmt.Errorf("duplicate route %q", p)
		}
		if len(rt.Layouts) == 0 {
			return nil, fmt.Errorf("route %q has no layouts", p)
		}
		chain := make([]*tracking.Layout, 0, len(rt.Layouts))
		for _, name := range rt.Layouts {
			l, ok := r.layouts[name]
			if !ok {
				return nil, fmt.Errorf("route %q: unknown layout %q", p, name)
			}
			chain = append(chain, l)
		}
		r.routes[p] = chain
		r.paths = append(r.paths, p)
	}
	sort.Strings(r.paths)
	return r, nil
}

// Chain returns the layout chain registered for path.
func (r *Registry) Chain(path string) ([]*tracking.Layout, bool) {
	chain, ok := r.routes[normalize(path)]
	if !ok {
		return nil, false
	}
	return append([]*tracking.Layout(nil), chain...), true
}

// Layout returns the layout registered under name.
func (r *Registry) Layout(name string) (*tracking.Layout, bool) {
	l, ok := r.layouts[name]
	return l, ok
}

// Paths returns the registered route paths, sorted.
func (r *Registry) Paths() []string {
	return append([]string(nil), r.paths...)
}

// FromConfig builds a Registry from the layouts and routes of cfg.
func FromConfig(cfg config.Config) (*Registry, error) {
	layouts := make([]*tracking.Layout, 0, len(cfg.Layouts))
	for _, lc := range cfg.Layouts {
		l, err := layoutFromConfig(lc)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	routes := make([]Route, 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		routes = append(routes, Route{Path: rc.Path, Layouts: rc.Layouts})
	}
	return New(layouts, routes)
}

func layoutFromConfig(lc config.LayoutConfig) (*tracking.Layout, error) {
	l := &tracking.Layout{Name: lc.Name, IgnorePageView: lc.IgnorePageView}
	if lc.Declarative() {
		prodLog, err := tracking.ParseLogLevel(lc.ProductionLogging)
		if err != nil {
			return nil, fmt.Errorf("layout %q: production_logging: %w", lc.Name, err)
		}
		devLog, err := tracking.ParseLogLevel(lc.DevLogging)
		if err != nil {
			return nil, fmt.Errorf("layout %q: dev_logging: %w", lc.Name, err)
		}
		mode, err := tracking.ParseSendMode(lc.SendMode)
		if err != nil {
			return nil, fmt.Errorf("layout %q: send_mode: %w", lc.Name, err)
		}
		l.Settings = &tracking.Settings{
			TrackingID:        lc.TrackingID,
			CookieDomain:      lc.CookieDomain,
			ProductionLogging: prodLog,
			DevLogging:        devLog,
			SendMode:          mode,
			PageViewPrefix:    lc.PageViewPrefix,
		}
	}
	if lc.Programmatic() {
		l.Configure = configurator(lc)
	}
	return l, nil
}

// configurator applies the field maps of lc in sorted key order.
func configurator(lc config.LayoutConfig) func(*tracking.Configuration) {
	scriptURL := lc.ScriptURL
	create := sortedPairs(lc.CreateFields)
	initial := sortedPairs(lc.InitialValues)
	debug := sortedPairs(lc.DebugFields)
	return func(c *tracking.Configuration) {
		if scriptURL != "" {
			c.SetScriptURL(scriptURL)
		}
		for _, p := range create {
			c.SetCreateField(p.key, p.val)
		}
		for _, p := range initial {
			c.SetInitialValue(p.key, p.val)
		}
		for _, p := range debug {
			c.SetDebugField(p.key, p.val)
		}
	}
}

type pair struct {
	key string
	val any
}

func sortedPairs(m map[string]any) []pair {
	out := make([]pair, 0, len(m))
	for k, v := range m {
		out = append(out, pair{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// normalize trims a trailing slash and ensures a leading one.
func normalize(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
