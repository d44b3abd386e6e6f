// Package http contains the HTTP handlers for the delivery API. Handlers
// decode requests, delegate to the service layer, and render responses;
// they hold no business logic of their own.
package http
