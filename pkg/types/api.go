package types

// OpenResponse is returned by POST /ui.
type OpenResponse struct {
	// Identifier of the newly opened UI.
	// example: 3f1c2a9e-6f0b-4d6b-9c1e-8a4d2e7b5c10
	UIID string `json:"ui_id" example:"3f1c2a9e-6f0b-4d6b-9c1e-8a4d2e7b5c10"`
}

// NavigateRequest is the payload of POST /ui/{id}/navigate.
type NavigateRequest struct {
	// Route path to navigate to.
	// example: /orders
	Path string `json:"path" example:"/orders"`
	// Optional query parameters carried by the navigation.
	Query map[string][]string `json:"query,omitempty"`
}

// PageViewRequest is the payload of POST /ui/{id}/pageview.
type PageViewRequest struct {
	// Page location to report.
	// example: /custom/location
	Location string `json:"location" example:"/custom/location"`
	// Optional extra event fields. An explicit page_location wins over Location.
	Fields *Fields `json:"fields,omitempty" swaggertype:"object"`
}

// CommandRequest is the payload of POST /ui/{id}/events.
type CommandRequest struct {
	// gtag command name.
	// example: event
	Name string `json:"name" example:"event"`
	// Positional arguments following the command name.
	Args []any `json:"args,omitempty" swaggertype:"array,object"`
	// Optional trailing fields object.
	Fields *Fields `json:"fields,omitempty" swaggertype:"object"`
}

// TurnResponse carries the client calls produced by one request turn.
type TurnResponse struct {
	// UI the turn belongs to.
	UIID string `json:"ui_id"`
	// Calls to execute in the browser, in order.
	Calls []ClientCall `json:"calls"`
	// Whether the UI's tracker has been initialized.
	// example: true
	Initialized bool `json:"initialized" example:"true"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: ui not found
	Error string `json:"error" example:"ui not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
