// Package app assembles the delivery dashboard server: configuration,
// logging, the dataset-backed delivery service, middleware, routes, and
// the HTTP server lifecycle.
package app
