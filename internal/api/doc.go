// Package api contains the HTTP handlers for the wardrobe API. Handlers
// are thin JSON adapters: they decode and validate the request, call one
// service method, and map the result or error onto the wire. All wardrobe
// semantics live in the service layer.
package api
