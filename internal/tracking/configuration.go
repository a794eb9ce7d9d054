package tracking

import (
	"net/url"

	"gatrack/pkg/types"
)

// DefaultScriptURL is the gtag.js loader. The tracking id is appended as the
// id query parameter.
const DefaultScriptURL = "https://www.googletagmanager.com/gtag/js"

// disableSendField is set to null in the initial values when hits must not
// be sent.
const disableSendField = "sendHitTask"

// Configuration describes how the client-side tracker is created and
// initialized. It is mutable until the owning Tracker initializes.
type Configuration struct {
	trackingID     string
	cookieDomain   string
	pageViewPrefix string
	scriptURL      string
	createFields   types.Fields
	initialValues  types.Fields
	debugFields    types.Fields
}

// NewConfiguration creates a Configuration with the given client log level.
// When send is false an explicit null sendHitTask initial value is added.
func NewConfiguration(level LogLevel, send bool) *Configuration {
	c := &Configuration{
		cookieDomain: DefaultCookieDomain,
		scriptURL:    DefaultScriptURL,
	}
	level.apply(c)
	if !send {
		c.SetInitialValue(disableSendField, nil)
	}
	return c
}

// FromSettings seeds a Configuration from declarative settings.
func FromSettings(s Settings, production bool) *Configuration {
	s = s.withDefaults()
	level := s.DevLogging
	if production {
		level = s.ProductionLogging
	}
	c := NewConfiguration(level, s.SendMode.ShouldSend(production))
	c.trackingID = s.TrackingID
	c.cookieDomain = s.CookieDomain
	c.pageViewPrefix = s.PageViewPrefix
	return c
}

func (c *Configuration) TrackingID() string      { return c.trackingID }
func (c *Configuration) SetTrackingID(id string) { c.trackingID = id }

func (c *Configuration) CookieDomain() string { return c.cookieDomain }

// SetCookieDomain sets the cookie domain; empty restores "auto".
func (c *Configuration) SetCookieDomain(domain string) {
	if domain == "" {
		domain = DefaultCookieDomain
	}
	c.cookieDomain = domain
}

func (c *Configuration) PageViewPrefix() string          { return c.pageViewPrefix }
func (c *Configuration) SetPageViewPrefix(prefix string) { c.pageViewPrefix = prefix }

// SetScriptURL overrides the loader URL; empty restores the default.
func (c *Configuration) SetScriptURL(u string) {
	if u == "" {
		u = DefaultScriptURL
	}
	c.scriptURL = u
}

// ScriptURL returns the loader URL with the tracking id query parameter.
func (c *Configuration) ScriptURL() string {
	return c.scriptURL + "?id=" + url.QueryEscape(c.trackingID)
}

func (c *Configuration) SetCreateField(name string, v any) { c.createFields.Set(name, v) }
func (c *Configuration) RemoveCreateField(name string)     { c.createFields.Delete(name) }

// SetInitialValue sets a field sent once after creation. A nil value is kept
// as an explicit null.
func (c *Configuration) SetInitialValue(name string, v any) { c.initialValues.Set(name, v) }
func (c *Configuration) RemoveInitialValue(name string)     { c.initialValues.Delete(name) }

// SetDebugField sets a field that is merged into the create fields and also
// exposed as window.ga_debug.
func (c *Configuration) SetDebugField(name string, v any) { c.debugFields.Set(name, v) }
func (c *Configuration) RemoveDebugField(name string)     { c.debugFields.Delete(name) }

func (c *Configuration) CreateFields() *types.Fields  { return c.createFields.Clone() }
func (c *Configuration) InitialValues() *types.Fields { return c.initialValues.Clone() }
func (c *Configuration) DebugFields() *types.Fields   { return c.debugFields.Clone() }

// MergedFields returns the fields of the config command: create fields,
// then initial values, then debug fields, later sources overriding earlier
// ones. The cookie domain is kept on the configuration only; gtag takes it
// from the analytics property.
func (c *Configuration) MergedFields() *types.Fields {
	out := &types.Fields{}
	out.Merge(&c.createFields)
	out.Merge(&c.initialValues)
	out.Merge(&c.debugFields)
	return out
}
