package tracking

// Layout is the explicit registration of one router layout or view.
// Settings and Configure are the two optional configuration sources; only
// the root (outermost) layout of the active chain is consulted for them.
type Layout struct {
	Name string
	// Settings is the declarative configuration, nil when absent.
	Settings *Settings
	// Configure is the programmatic override, invoked after Settings are
	// applied. Nil when absent.
	Configure func(*Configuration)
	// IgnorePageView suppresses automatic page views for any chain
	// containing this layout.
	IgnorePageView bool
}

func (l *Layout) HasSettings() bool     { return l != nil && l.Settings != nil }
func (l *Layout) HasConfigurator() bool { return l != nil && l.Configure != nil }

// Configurable reports whether Resolve can produce a Configuration for l.
func (l *Layout) Configurable() bool { return l.HasSettings() || l.HasConfigurator() }

// Resolve derives a Configuration from the root layout. Declarative settings
// seed the defaults, the programmatic configurator may override them. It
// returns nil when the layout has neither.
func Resolve(root *Layout, production bool) *Configuration {
	var cfg *Configuration
	if root.HasSettings() {
		cfg = FromSettings(*root.Settings, production)
	}
	if root.HasConfigurator() {
		if cfg == nil {
			cfg = NewConfiguration(defaultLogLevel(production), SendProduction.ShouldSend(production))
		}
		root.Configure(cfg)
	}
	return cfg
}

// RootLayout returns the outermost layout of an active chain.
func RootLayout(chain []*Layout) (*Layout, bool) {
	if len(chain) == 0 {
		return nil, false
	}
	return chain[len(chain)-1], true
}
