package tracking

import "testing"

func TestResolveNeitherSource(t *testing.T) {
	if cfg := Resolve(&Layout{Name: "plain"}, false); cfg != nil {
		t.Fatalf("expected nil configuration")
	}
	if cfg := Resolve(nil, false); cfg != nil {
		t.Fatalf("expected nil configuration for nil layout")
	}
}

func TestResolveSettingsOnly(t *testing.T) {
	cfg := Resolve(&Layout{Settings: &Settings{TrackingID: "G-1", PageViewPrefix: "/app"}}, true)
	if cfg == nil || cfg.TrackingID() != "G-1" || cfg.PageViewPrefix() != "/app" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestResolveConfiguratorOverridesSettings(t *testing.T) {
	l := &Layout{
		Settings: &Settings{TrackingID: "G-1", PageViewPrefix: "/app"},
		Configure: func(c *Configuration) {
			c.SetTrackingID("G-2")
			c.SetCreateField("send_page_view", false)
		},
	}
	cfg := Resolve(l, false)
	if cfg.TrackingID() != "G-2" || cfg.PageViewPrefix() != "/app" {
		t.Fatalf("id=%q prefix=%q", cfg.TrackingID(), cfg.PageViewPrefix())
	}
	if v, _ := cfg.CreateFields().Get("send_page_view"); v != false {
		t.Fatalf("configurator field missing")
	}
}

func TestResolveConfiguratorOnlySynthesizesDefaults(t *testing.T) {
	var seen *Configuration
	l := &Layout{Configure: func(c *Configuration) { seen = c; c.SetTrackingID("G-3") }}

	dev := Resolve(l, false)
	if dev != seen {
		t.Fatalf("configurator must receive the returned configuration")
	}
	if v, _ := dev.DebugFields().Get("debug_mode"); v != true {
		t.Fatalf("dev default should be debug logging")
	}
	if !dev.InitialValues().Has("sendHitTask") {
		t.Fatalf("dev default should disable send")
	}

	prod := Resolve(l, true)
	if prod.DebugFields().Len() != 0 || prod.InitialValues().Has("sendHitTask") {
		t.Fatalf("production defaults not applied")
	}
}

func TestLayoutCapabilities(t *testing.T) {
	var nilLayout *Layout
	if nilLayout.Configurable() {
		t.Fatalf("nil layout is not configurable")
	}
	if !(&Layout{Settings: &Settings{}}).Configurable() {
		t.Fatalf("settings make a layout configurable")
	}
	if !(&Layout{Configure: func(*Configuration) {}}).Configurable() {
		t.Fatalf("configurator makes a layout configurable")
	}
	if _, ok := RootLayout(nil); ok {
		t.Fatalf("empty chain has no root")
	}
}

func TestConfigCommand(t *testing.T) {
	cmd, err := ConfigCommand(configuredChain(Settings{TrackingID: "G-TEST", SendMode: SendNever}), true)
	if err != nil {
		t.Fatalf("config command: %v", err)
	}
	if got := mustJSON(t, cmd.Wire()); got != `["config","G-TEST",{"sendHitTask":null}]` {
		t.Fatalf("wire=%s", got)
	}

	if _, err := ConfigCommand(nil, true); !IsEmptyChain(err) {
		t.Fatalf("expected empty chain error, got %v", err)
	}
	if _, err := ConfigCommand([]*Layout{{Name: "plain"}}, true); !IsNotConfigurable(err) {
		t.Fatalf("expected not configurable error, got %v", err)
	}
	if _, err := ConfigCommand(configuredChain(Settings{}), true); !IsMissingTrackingID(err) {
		t.Fatalf("expected missing tracking id error, got %v", err)
	}
}
