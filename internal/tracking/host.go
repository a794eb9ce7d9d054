package tracking

import "gatrack/pkg/types"

// Host is the per-UI environment a Tracker dispatches into.
type Host interface {
	// ExecuteJS schedules script for execution in the browser with args
	// bound as $0..$n.
	ExecuteJS(script string, args ...any)
	// AddJavaScript loads an external script resource.
	AddJavaScript(url string, mode types.LoadMode)
	// BeforeClientResponse registers fn to run once before the current
	// turn's response is built.
	BeforeClientResponse(fn func() error)
	// ActiveChain returns the active layout chain, innermost first.
	ActiveChain() []*Layout
	// ProductionMode reports the session's production flag.
	ProductionMode() bool
}
