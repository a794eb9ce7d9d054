package tracking

import (
	"encoding/json"
	"testing"

	"gatrack/pkg/types"
)

// fakeHost records client calls and deferred callbacks for one UI.
type fakeHost struct {
	chain      []*Layout
	production bool
	calls      []types.ClientCall
	deferred   []func() error
}

func (h *fakeHost) ExecuteJS(script string, args ...any) {
	h.calls = append(h.calls, types.ClientCall{Kind: types.CallExecute, Script: script, Args: args})
}

func (h *fakeHost) AddJavaScript(url string, mode types.LoadMode) {
	h.calls = append(h.calls, types.ClientCall{Kind: types.CallLoadScript, URL: url, Mode: mode})
}

func (h *fakeHost) BeforeClientResponse(fn func() error) { h.deferred = append(h.deferred, fn) }
func (h *fakeHost) ActiveChain() []*Layout               { return h.chain }
func (h *fakeHost) ProductionMode() bool                 { return h.production }

// endTurn runs the deferred callbacks and returns the calls emitted so far.
func (h *fakeHost) endTurn(t *testing.T) error {
	t.Helper()
	for len(h.deferred) > 0 {
		fn := h.deferred[0]
		h.deferred = h.deferred[1:]
		if err := fn(); err != nil {
			h.deferred = nil
			return err
		}
	}
	return nil
}

// gtagCalls returns the JSON-encoded argument lists of every gtag call.
func (h *fakeHost) gtagCalls(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, c := range h.calls {
		if c.Kind == types.CallExecute && c.Script == sendScript {
			out = append(out, mustJSON(t, c.Args))
		}
	}
	return out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func configuredChain(s Settings) []*Layout {
	return []*Layout{{Name: "view"}, {Name: "main", Settings: &s}}
}
