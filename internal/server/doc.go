// Package server exposes the inventory over a loopback HTTP API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Routes are registered with method-qualified
// patterns ("GET /items/{id}"), so the mux answers 405 for a known path with the wrong method.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Items API
//
// [ItemsHandler] drives the same view-models as the TUI:
//
//	GET    /items            → every item, ordered by name
//	POST   /items            → create from a form body ({"name", "price", "quantity"} as strings)
//	GET    /items/stream     → Server-Sent Events, one "items" event per change
//	GET    /items/{id}       → one item
//	PUT    /items/{id}       → replace from a form body
//	DELETE /items/{id}       → delete
//	POST   /items/{id}/sell  → reduce quantity by one
//
// Errors are JSON objects with an "error" message and, for validation failures, a "fields" list.
//
// # Middleware
//
// [Logging] records one line per request and [RateLimit] applies a token bucket shared by all clients.
package server
