package tracking

import (
	"github.com/rs/zerolog"

	"gatrack/pkg/types"
)

const (
	// sendScript forwards its arguments to the client gtag function.
	sendScript = "window.gtag.apply(null, arguments)"

	pageLocationField = "page_location"
	pageViewEvent     = "page_view"
)

// Options holds optional Tracker collaborators.
type Options struct {
	Logger    *zerolog.Logger
	Publisher EventPublisher
}

// Tracker queues gtag commands for one UI and flushes them to the client
// before the UI's next response. The first flush initializes the client
// tracker from the configuration of the root layout.
type Tracker struct {
	host Host
	log  zerolog.Logger
	pub  EventPublisher

	pending        []types.Command
	scheduled      bool
	initialized    bool
	pageViewPrefix string
}

// New creates a Tracker bound to host with default options.
func New(host Host) *Tracker { return NewWithOptions(host, Options{}) }

// NewWithOptions creates a Tracker bound to host.
func NewWithOptions(host Host, opts Options) *Tracker {
	t := &Tracker{host: host, log: zerolog.Nop(), pub: noopPublisher{}}
	if opts.Logger != nil {
		t.log = *opts.Logger
	}
	if opts.Publisher != nil {
		t.pub = opts.Publisher
	}
	return t
}

// IsInitialized reports whether the client bootstrap has completed.
func (t *Tracker) IsInitialized() bool { return t.initialized }

// Pending returns the number of queued commands.
func (t *Tracker) Pending() int { return len(t.pending) }

// SendGenericCommand queues a gtag command. The first command of a cycle
// schedules the flush; later ones ride along with it.
func (t *Tracker) SendGenericCommand(name string, fields *types.Fields, args ...any) {
	t.pending = append(t.pending, types.Command{Name: name, Fields: fields.Clone(), Args: args})
	if t.scheduled {
		return
	}
	t.scheduled = true
	t.host.BeforeClientResponse(t.flush)
}

// AbortCycle tells the tracker that the host dropped its scheduled flush
// without running it. Queued commands stay and go out with the next flush.
func (t *Tracker) AbortCycle() {
	t.scheduled = false
}

// SendPageView queues a page_view event for location. An explicit
// page_location in fields takes precedence. fields is not modified.
func (t *Tracker) SendPageView(location string, fields *types.Fields) {
	f := fields.Clone()
	if !f.Has(pageLocationField) {
		f.Set(pageLocationField, location)
	}
	t.SendGenericCommand("event", f, pageViewEvent)
}

// SendEvent queues a grouped event.
func (t *Tracker) SendEvent(groupID, eventName string) {
	t.SendGenericCommand("event", types.NewFields("group_id", groupID, "event_name", eventName), eventName)
}

// SendEventLabel queues an event with category, action and label.
func (t *Tracker) SendEventLabel(category, action, label string) {
	t.SendGenericCommand("event", nil, category, action, label)
}

// SendEventValue queues an event with category, action, label and value.
func (t *Tracker) SendEventValue(category, action, label string, value int) {
	t.SendGenericCommand("event", nil, category, action, label, value)
}

// SendEventFields queues an event with category, action and a fields object.
func (t *Tracker) SendEventFields(category, action string, fields *types.Fields) {
	t.SendGenericCommand("event", fields, category, action)
}

// SetPageLocation queues ["set", "page_location", location].
func (t *Tracker) SetPageLocation(location string) {
	t.SendGenericCommand("set", nil, pageLocationField, location)
}

// flush runs before the client response. On initialization failure the
// queue is kept and nothing is sent.
func (t *Tracker) flush() error {
	t.scheduled = false
	if !t.initialized {
		if err := t.init(); err != nil {
			t.log.Error().Err(err).Int("pending", len(t.pending)).Msg("tracker flush failed")
			t.pub.Publish(Event{Name: EventFlushFailed, Fields: map[string]any{"pending": len(t.pending), "error": err.Error()}})
			return err
		}
	}
	pending := t.pending
	t.pending = nil
	for _, cmd := range pending {
		t.send(cmd)
	}
	t.log.Debug().Int("commands", len(pending)).Msg("tracker flushed")
	t.pub.Publish(Event{Name: EventFlushed, Fields: map[string]any{"commands": len(pending)}})
	return nil
}

// send delivers one command to the client, applying the page view prefix.
func (t *Tracker) send(cmd types.Command) {
	if t.pageViewPrefix != "" {
		cmd = applyPrefix(cmd, t.pageViewPrefix)
	}
	t.host.ExecuteJS(sendScript, cmd.Wire()...)
	commandsSentTotal.WithLabelValues(commandLabel(cmd.Name)).Inc()
}

// applyPrefix rewrites the location of ["set", "page_location", loc] and of
// page_view events. Other commands are returned unchanged.
func applyPrefix(cmd types.Command, prefix string) types.Command {
	switch {
	case cmd.Name == "set" && len(cmd.Args) == 2 && cmd.Fields.Len() == 0:
		key, _ := cmd.Args[0].(string)
		loc, ok := cmd.Args[1].(string)
		if key != pageLocationField || !ok {
			return cmd
		}
		out := cmd.Clone()
		out.Args[1] = prefix + loc
		return out
	case cmd.Name == "event" && len(cmd.Args) == 1 && cmd.Args[0] == pageViewEvent:
		v, _ := cmd.Fields.Get(pageLocationField)
		loc, ok := v.(string)
		if !ok {
			return cmd
		}
		out := cmd.Clone()
		out.Fields.Set(pageLocationField, prefix+loc)
		return out
	}
	return cmd
}

// commandLabel bounds the metric label set.
func commandLabel(name string) string {
	switch name {
	case "config", "event", "set", "get", "consent", "js":
		return name
	default:
		return "other"
	}
}
