package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gatrack/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr         string         `json:"addr" yaml:"addr" toml:"addr"`
	Production   bool           `json:"production" yaml:"production" toml:"production"`
	LogLevel     string         `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string         `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes int64          `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS         CORSConfig     `json:"cors" yaml:"cors" toml:"cors"`
	Layouts      []LayoutConfig `json:"layouts" yaml:"layouts" toml:"layouts"`
	Routes       []RouteConfig  `json:"routes" yaml:"routes" toml:"routes"`
}

// CORSConfig enables cross-origin access to the API.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// LayoutConfig registers one layout or view.
//
// The declarative fields (tracking_id through page_view_prefix) become the
// layout's tracker settings when any of them is set. The field maps and
// script_url are applied afterwards as programmatic overrides.
type LayoutConfig struct {
	Name              string         `json:"name" yaml:"name" toml:"name"`
	TrackingID        string         `json:"tracking_id" yaml:"tracking_id" toml:"tracking_id"`
	CookieDomain      string         `json:"cookie_domain" yaml:"cookie_domain" toml:"cookie_domain"`
	ProductionLogging string         `json:"production_logging" yaml:"production_logging" toml:"production_logging"`
	DevLogging        string         `json:"dev_logging" yaml:"dev_logging" toml:"dev_logging"`
	SendMode          string         `json:"send_mode" yaml:"send_mode" toml:"send_mode"`
	PageViewPrefix    string         `json:"page_view_prefix" yaml:"page_view_prefix" toml:"page_view_prefix"`
	IgnorePageView    bool           `json:"ignore_page_view" yaml:"ignore_page_view" toml:"ignore_page_view"`
	ScriptURL         string         `json:"script_url" yaml:"script_url" toml:"script_url"`
	CreateFields      map[string]any `json:"create_fields" yaml:"create_fields" toml:"create_fields"`
	InitialValues     map[string]any `json:"initial_values" yaml:"initial_values" toml:"initial_values"`
	DebugFields       map[string]any `json:"debug_fields" yaml:"debug_fields" toml:"debug_fields"`
}

// Declarative reports whether any declarative tracker setting is present.
func (l LayoutConfig) Declarative() bool {
	return l.TrackingID != "" || l.CookieDomain != "" || l.ProductionLogging != "" ||
		l.DevLogging != "" || l.SendMode != "" || l.PageViewPrefix != ""
}

// Programmatic reports whether any programmatic override is present.
func (l LayoutConfig) Programmatic() bool {
	return l.ScriptURL != "" || len(l.CreateFields) > 0 || len(l.InitialValues) > 0 || len(l.DebugFields) > 0
}

// RouteConfig maps a request path to its layout chain, innermost first.
type RouteConfig struct {
	Path    string   `json:"path" yaml:"path" toml:"path"`
	Layouts []string `json:"layouts" yaml:"layouts" toml:"layouts"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading ~ is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
