package tracking

import "gatrack/pkg/types"

// bootstrapScript installs the dataLayer buffer and the gtag dispatch
// function unless the page already has them.
const bootstrapScript = "window.dataLayer = window.dataLayer || []; " +
	"window.gtag = window.gtag || function() { window.dataLayer.push(arguments); }; " +
	"window.gtag('js', new Date());"

const debugScript = "window.ga_debug = $0;"

// prepare resolves the configuration of the chain's root layout and
// validates it.
func prepare(chain []*Layout, production bool) (*Configuration, *Layout, error) {
	root, ok := RootLayout(chain)
	if !ok {
		return nil, nil, emptyChainError{}
	}
	cfg := Resolve(root, production)
	if cfg == nil {
		return nil, root, notConfigurableError{layout: root.Name}
	}
	if cfg.TrackingID() == "" {
		return nil, root, missingTrackingIDError{}
	}
	return cfg, root, nil
}

// ConfigCommand returns the config command a tracker on chain would send
// when it initializes, or the error that would stop it.
func ConfigCommand(chain []*Layout, production bool) (types.Command, error) {
	cfg, _, err := prepare(chain, production)
	if err != nil {
		return types.Command{}, err
	}
	return types.Command{Name: "config", Fields: cfg.MergedFields(), Args: []any{cfg.TrackingID()}}, nil
}

// init resolves the configuration and bootstraps the client tracker. Every
// check happens before anything is emitted.
func (t *Tracker) init() (err error) {
	defer func() { initializationsTotal.WithLabelValues(initResultLabel(err)).Inc() }()

	cfg, root, err := prepare(t.host.ActiveChain(), t.host.ProductionMode())
	if err != nil {
		return err
	}
	trackingID := cfg.TrackingID()
	t.pageViewPrefix = cfg.PageViewPrefix()

	t.host.ExecuteJS(bootstrapScript)
	fields := cfg.MergedFields()
	if debug := cfg.DebugFields(); debug.Len() > 0 {
		t.host.ExecuteJS(debugScript, debug)
	}
	t.send(types.Command{Name: "config", Fields: fields, Args: []any{trackingID}})
	t.host.AddJavaScript(cfg.ScriptURL(), types.LoadEager)
	t.initialized = true

	t.log.Debug().Str("tracking_id", trackingID).Str("root_layout", root.Name).Msg("tracker initialized")
	t.pub.Publish(Event{Name: EventInitialized, Fields: map[string]any{"tracking_id": trackingID, "root_layout": root.Name}})
	return nil
}
