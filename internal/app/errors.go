package app

import (
	"errors"
	"net/http"
)

// uiNotFoundError signals an unknown or closed UI id.
type uiNotFoundError struct{ id string }

func (e uiNotFoundError) Error() string   { return "ui not found: " + e.id }
func (e uiNotFoundError) StatusCode() int { return http.StatusNotFound }

// ErrUINotFound returns the error reported for an unknown UI id.
func ErrUINotFound(id string) error { return uiNotFoundError{id: id} }

// IsUINotFound reports whether err indicates an unknown UI.
func IsUINotFound(err error) bool {
	var e uiNotFoundError
	return errors.As(err, &e)
}

// routeNotFoundError signals a path without registered layout chain.
type routeNotFoundError struct{ path string }

func (e routeNotFoundError) Error() string   { return "route not found: " + e.path }
func (e routeNotFoundError) StatusCode() int { return http.StatusNotFound }

// ErrRouteNotFound returns the error reported for an unregistered path.
func ErrRouteNotFound(path string) error { return routeNotFoundError{path: path} }

// IsRouteNotFound reports whether err indicates an unregistered path.
func IsRouteNotFound(err error) bool {
	var e routeNotFoundError
	return errors.As(err, &e)
}

// badRequestError signals an invalid request payload.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string   { return e.msg }
func (e badRequestError) StatusCode() int { return http.StatusBadRequest }
