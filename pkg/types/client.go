package types

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// CallKind identifies the host primitive a ClientCall maps to.
type CallKind string

const (
	CallExecute    CallKind = "execute"
	CallLoadScript CallKind = "load_script"
)

// LoadMode controls when an external script is fetched by the browser.
type LoadMode string

const (
	LoadEager LoadMode = "eager"
	LoadLazy  LoadMode = "lazy"
)

// ClientCall is one instruction delivered to the browser at the end of a turn.
type ClientCall struct {
	// Kind of call.
	// example: execute
	Kind CallKind `json:"kind" example:"execute"`
	// Script body for execute calls. Arguments are bound to $0..$n and to `arguments`.
	// example: window.gtag.apply(null, arguments)
	Script string `json:"script,omitempty" example:"window.gtag.apply(null, arguments)"`
	// Arguments for execute calls.
	Args []any `json:"args,omitempty" swaggertype:"array,object"`
	// Script URL for load_script calls.
	// example: https://www.googletagmanager.com/gtag/js?id=G-TEST
	URL string `json:"url,omitempty" example:"https://www.googletagmanager.com/gtag/js?id=G-TEST"`
	// Load mode for load_script calls.
	// example: eager
	Mode LoadMode `json:"mode,omitempty" example:"eager"`
}

var clientJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// JS renders the call as a self-contained JavaScript statement.
func (c ClientCall) JS() (string, error) {
	switch c.Kind {
	case CallExecute:
		args := c.Args
		if args == nil {
			args = []any{}
		}
		b, err := clientJSON.Marshal(args)
		if err != nil {
			return "", fmt.Errorf("encode args: %w", err)
		}
		params := make([]string, len(args))
		for i := range args {
			params[i] = fmt.Sprintf("$%d", i)
		}
		return fmt.Sprintf("(function(%s){%s}).apply(null, %s);", strings.Join(params, ","), c.Script, b), nil
	case CallLoadScript:
		u, err := clientJSON.Marshal(c.URL)
		if err != nil {
			return "", fmt.Errorf("encode url: %w", err)
		}
		load := fmt.Sprintf("var s=document.createElement('script');s.async=true;s.src=%s;document.head.appendChild(s);", u)
		if c.Mode == LoadLazy {
			return fmt.Sprintf("window.addEventListener('load',function(){%s});", load), nil
		}
		return fmt.Sprintf("(function(){%s})();", load), nil
	default:
		return "", fmt.Errorf("unknown call kind: %q", c.Kind)
	}
}

// RenderScript renders calls in order, one statement per line.
func RenderScript(calls []ClientCall) (string, error) {
	var sb strings.Builder
	for _, c := range calls {
		js, err := c.JS()
		if err != nil {
			return "", err
		}
		sb.WriteString(js)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
