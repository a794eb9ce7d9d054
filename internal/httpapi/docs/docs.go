// Package docs registers the OpenAPI document served by the Swagger UI.
// Regenerate with `swag init -g cmd/gatrackd/docs.go -o internal/httpapi/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "gatrack maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ui": {
            "post": {
                "produces": ["application/json"],
                "tags": ["ui"],
                "summary": "Open a UI",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.OpenResponse"}}
                }
            }
        },
        "/ui/{id}": {
            "delete": {
                "tags": ["ui"],
                "summary": "Close a UI",
                "parameters": [
                    {"type": "string", "description": "UI id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/ui/{id}/navigate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ui"],
                "summary": "Navigate a UI",
                "parameters": [
                    {"type": "string", "description": "UI id", "name": "id", "in": "path", "required": true},
                    {"description": "Navigation", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.NavigateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TurnResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/ui/{id}/pageview": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ui"],
                "summary": "Track a page view",
                "parameters": [
                    {"type": "string", "description": "UI id", "name": "id", "in": "path", "required": true},
                    {"description": "Page view", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PageViewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TurnResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/ui/{id}/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ui"],
                "summary": "Send a gtag command",
                "parameters": [
                    {"type": "string", "description": "UI id", "name": "id", "in": "path", "required": true},
                    {"description": "Command", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.CommandRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TurnResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/page/{path}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["page"],
                "summary": "Render a page",
                "parameters": [
                    {"type": "string", "description": "Route path", "name": "path", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ClientCall": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "execute"},
                "script": {"type": "string", "example": "window.gtag.apply(null, arguments)"},
                "args": {"type": "array", "items": {"type": "object"}},
                "url": {"type": "string", "example": "https://www.googletagmanager.com/gtag/js?id=G-TEST"},
                "mode": {"type": "string", "example": "eager"}
            }
        },
        "types.CommandRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "event"},
                "args": {"type": "array", "items": {"type": "object"}},
                "fields": {"type": "object"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "ui not found"},
                "code": {"type": "integer", "example": 404}
            }
        },
        "types.NavigateRequest": {
            "type": "object",
            "properties": {
                "path": {"type": "string", "example": "/orders"},
                "query": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "types.OpenResponse": {
            "type": "object",
            "properties": {
                "ui_id": {"type": "string", "example": "3f1c2a9e-6f0b-4d6b-9c1e-8a4d2e7b5c10"}
            }
        },
        "types.PageViewRequest": {
            "type": "object",
            "properties": {
                "location": {"type": "string", "example": "/custom/location"},
                "fields": {"type": "object"}
            }
        },
        "types.TurnResponse": {
            "type": "object",
            "properties": {
                "ui_id": {"type": "string"},
                "calls": {"type": "array", "items": {"$ref": "#/definitions/types.ClientCall"}},
                "initialized": {"type": "boolean", "example": true}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "gatrack API",
	Description:      "HTTP API driving per-UI Google Analytics gtag trackers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
