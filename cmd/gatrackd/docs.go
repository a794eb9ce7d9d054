package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/gatrackd/docs.go -o internal/httpapi/docs`.
//
// @title           gatrack API
// @version         1.0
// @description     HTTP API driving per-UI Google Analytics gtag trackers.
//
// @contact.name   gatrack maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
