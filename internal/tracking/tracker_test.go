package tracking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gatrack/pkg/types"
)

func TestQueuedCommandsFlushInOrderExactlyOnce(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{TrackingID: "G-1", DevLogging: LogNone, SendMode: SendAlways})}
	tr := New(h)
	for i := 0; i < 5; i++ {
		tr.SendEventLabel("cat", "act", fmt.Sprintf("l%d", i))
	}
	if tr.Pending() != 5 {
		t.Fatalf("pending=%d", tr.Pending())
	}
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []string{
		`["config","G-1"]`,
		`["event","cat","act","l0"]`,
		`["event","cat","act","l1"]`,
		`["event","cat","act","l2"]`,
		`["event","cat","act","l3"]`,
		`["event","cat","act","l4"]`,
	}
	if diff := cmp.Diff(want, h.gtagCalls(t)); diff != "" {
		t.Fatalf("gtag calls mismatch (-want +got):\n%s", diff)
	}
	if tr.Pending() != 0 || !tr.IsInitialized() {
		t.Fatalf("pending=%d initialized=%v", tr.Pending(), tr.IsInitialized())
	}
	// A second turn without commands emits nothing.
	before := len(h.calls)
	if err := h.endTurn(t); err != nil {
		t.Fatalf("empty turn: %v", err)
	}
	if len(h.calls) != before {
		t.Fatalf("commands were sent twice")
	}
}

func TestSingleFlushCallbackPerCycle(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{TrackingID: "G-1"})}
	tr := New(h)
	tr.SendEvent("g", "a")
	tr.SendEvent("g", "b")
	tr.SendPageView("/x", nil)
	if len(h.deferred) != 1 {
		t.Fatalf("expected exactly one flush callback, got %d", len(h.deferred))
	}
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	tr.SendEvent("g", "c")
	if len(h.deferred) != 1 {
		t.Fatalf("next cycle should schedule again, got %d", len(h.deferred))
	}
}

func TestBootstrapSequence(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{TrackingID: "G-TEST"})}
	tr := New(h)
	tr.SendPageView("/orders?page=2", nil)
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(h.calls) != 5 {
		t.Fatalf("expected 5 client calls, got %d: %+v", len(h.calls), h.calls)
	}
	if h.calls[0].Script != bootstrapScript {
		t.Fatalf("first call must be the bootstrap script, got %q", h.calls[0].Script)
	}
	if h.calls[1].Script != debugScript || mustJSON(t, h.calls[1].Args) != `[{"debug_mode":true}]` {
		t.Fatalf("expected ga_debug assignment, got %+v", h.calls[1])
	}
	if got := mustJSON(t, h.calls[2].Args); got != `["config","G-TEST",{"sendHitTask":null,"debug_mode":true}]` {
		t.Fatalf("config call=%s", got)
	}
	want := types.ClientCall{Kind: types.CallLoadScript, URL: DefaultScriptURL + "?id=G-TEST", Mode: types.LoadEager}
	if diff := cmp.Diff(want, h.calls[3]); diff != "" {
		t.Fatalf("script load mismatch (-want +got):\n%s", diff)
	}
	if got := mustJSON(t, h.calls[4].Args); got != `["event","page_view",{"page_location":"/orders?page=2"}]` {
		t.Fatalf("page view call=%s", got)
	}
}

func TestNoDebugAssignmentWithoutDebugFields(t *testing.T) {
	h := &fakeHost{production: true, chain: configuredChain(Settings{TrackingID: "G-1"})}
	tr := New(h)
	tr.SendEvent("g", "e")
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	for _, c := range h.calls {
		if c.Script == debugScript {
			t.Fatalf("unexpected ga_debug assignment in production")
		}
	}
}

func TestPageViewPrefixAppliedAtSendTime(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{TrackingID: "G-1", PageViewPrefix: "/app", DevLogging: LogNone})}
	tr := New(h)
	// Queued before the prefix is known.
	tr.SendPageView("/a", nil)
	tr.SetPageLocation("/b")
	tr.SendEventLabel("set", "page_location", "/c")
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got := h.gtagCalls(t)
	want := []string{
		`["config","G-1",{"sendHitTask":null}]`,
		`["event","page_view",{"page_location":"/app/a"}]`,
		`["set","page_location","/app/b"]`,
		`["event","set","page_location","/c"]`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("gtag calls mismatch (-want +got):\n%s", diff)
	}
}

func TestExplicitPageLocationWins(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{TrackingID: "G-1", DevLogging: LogNone, SendMode: SendAlways})}
	tr := New(h)
	extra := types.NewFields("page_location", "/explicit", "page_title", "Orders")
	tr.SendPageView("/ignored", extra)
	if extra.Len() != 2 {
		t.Fatalf("caller fields must not be modified")
	}
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got := h.gtagCalls(t)
	if got[1] != `["event","page_view",{"page_location":"/explicit","page_title":"Orders"}]` {
		t.Fatalf("page view=%s", got[1])
	}
}

func TestEventShapes(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{TrackingID: "G-1", DevLogging: LogNone, SendMode: SendAlways})}
	tr := New(h)
	tr.SendEvent("my_group", "my_event")
	tr.SendEventLabel("c", "a", "l")
	tr.SendEventValue("c", "a", "l", 3)
	tr.SendEventFields("c", "a", types.NewFields("k", "v"))
	tr.SendEventFields("c", "a", nil)
	tr.SendGenericCommand("consent", types.NewFields("analytics_storage", "denied"), "update")
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []string{
		`["config","G-1"]`,
		`["event","my_event",{"group_id":"my_group","event_name":"my_event"}]`,
		`["event","c","a","l"]`,
		`["event","c","a","l",3]`,
		`["event","c","a",{"k":"v"}]`,
		`["event","c","a"]`,
		`["consent","update",{"analytics_storage":"denied"}]`,
	}
	if diff := cmp.Diff(want, h.gtagCalls(t)); diff != "" {
		t.Fatalf("gtag calls mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushFailsWithoutConfiguration(t *testing.T) {
	pub := NewMemoryPublisher()
	h := &fakeHost{chain: []*Layout{{Name: "view"}, {Name: "plain"}}}
	tr := NewWithOptions(h, Options{Publisher: pub})
	tr.SendPageView("/a", nil)
	err := h.endTurn(t)
	if !IsNotConfigurable(err) || !IsConfigurationError(err) {
		t.Fatalf("expected not configurable error, got %v", err)
	}
	if !strings.Contains(err.Error(), "plain") {
		t.Fatalf("error should name the root layout: %v", err)
	}
	if len(h.calls) != 0 {
		t.Fatalf("no client calls expected, got %d", len(h.calls))
	}
	if tr.IsInitialized() || tr.Pending() != 1 {
		t.Fatalf("initialized=%v pending=%d", tr.IsInitialized(), tr.Pending())
	}
	ev := pub.Events()
	if len(ev) != 1 || ev[0].Name != EventFlushFailed {
		t.Fatalf("events=%+v", ev)
	}
}

func TestFlushFailsWithEmptyTrackingID(t *testing.T) {
	h := &fakeHost{chain: configuredChain(Settings{})}
	tr := New(h)
	tr.SendEvent("g", "e")
	if err := h.endTurn(t); !IsMissingTrackingID(err) {
		t.Fatalf("expected missing tracking id error, got %v", err)
	}
	if len(h.calls) != 0 {
		t.Fatalf("no client calls expected, got %d", len(h.calls))
	}
}

func TestFlushFailsWithEmptyChain(t *testing.T) {
	h := &fakeHost{}
	tr := New(h)
	tr.SendEvent("g", "e")
	if err := h.endTurn(t); !IsEmptyChain(err) {
		t.Fatalf("expected empty chain error, got %v", err)
	}
}

func TestFailedFlushRetriesOnNextCycleWithoutLosingCommands(t *testing.T) {
	settings := &Settings{}
	h := &fakeHost{chain: []*Layout{{Name: "main", Settings: settings}}}
	tr := New(h)
	tr.SendEventLabel("c", "a", "first")
	if err := h.endTurn(t); err == nil {
		t.Fatalf("expected failure")
	}
	// Same failure repeats until the configuration is fixed.
	tr.SendEventLabel("c", "a", "second")
	if err := h.endTurn(t); !IsMissingTrackingID(err) {
		t.Fatalf("expected repeated failure, got %v", err)
	}
	settings.TrackingID = "G-1"
	settings.DevLogging = LogNone
	settings.SendMode = SendAlways
	tr.SendEventLabel("c", "a", "third")
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []string{
		`["config","G-1"]`,
		`["event","c","a","first"]`,
		`["event","c","a","second"]`,
		`["event","c","a","third"]`,
	}
	if diff := cmp.Diff(want, h.gtagCalls(t)); diff != "" {
		t.Fatalf("gtag calls mismatch (-want +got):\n%s", diff)
	}
}

func TestInitializationHappensOnce(t *testing.T) {
	calls := 0
	l := &Layout{Name: "main", Configure: func(c *Configuration) { calls++; c.SetTrackingID("G-1") }}
	h := &fakeHost{production: true, chain: []*Layout{l}}
	pub := NewMemoryPublisher()
	tr := NewWithOptions(h, Options{Publisher: pub})
	for i := 0; i < 3; i++ {
		tr.SendEvent("g", "e")
		if err := h.endTurn(t); err != nil {
			t.Fatalf("flush %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("configurator invoked %d times", calls)
	}
	var configs int
	for _, c := range h.gtagCalls(t) {
		if strings.HasPrefix(c, `["config"`) {
			configs++
		}
	}
	if configs != 1 {
		t.Fatalf("config sent %d times", configs)
	}
	inits := 0
	for _, e := range pub.Events() {
		if e.Name == EventInitialized {
			inits++
		}
	}
	if inits != 1 {
		t.Fatalf("initialized events=%d", inits)
	}
}

func TestEndToEndDevModeExample(t *testing.T) {
	h := &fakeHost{chain: []*Layout{{Name: "home"}, {Name: "main", Settings: &Settings{TrackingID: "G-TEST"}}}}
	tr := New(h)
	tr.SendPageView("/home?tab=1", nil)
	if err := h.endTurn(t); err != nil {
		t.Fatalf("flush: %v", err)
	}
	want := []string{
		`["config","G-TEST",{"sendHitTask":null,"debug_mode":true}]`,
		`["event","page_view",{"page_location":"/home?tab=1"}]`,
	}
	if diff := cmp.Diff(want, h.gtagCalls(t)); diff != "" {
		t.Fatalf("gtag calls mismatch (-want +got):\n%s", diff)
	}
}
