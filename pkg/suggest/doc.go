// Package suggest defines the geocoding suggestion model shared by the
// autocomplete binder, the remote lookup clients, and the option endpoints.
//
// A Suggestion pairs a display label with the coordinate it resolves to. The
// List container replaces its contents atomically so the displayed labels and
// the label lookup used at selection time never drift apart.
package suggest
