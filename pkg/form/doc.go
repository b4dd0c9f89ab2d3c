// Package form models the host form the autocomplete binder works against: a
// slim field definition, a dotted-path value record, and the metadata contract
// that marks a field as geocoding-aware and points it at an options endpoint.
//
// Definitions load from YAML documents or from OpenAPI 3 request schemas. The
// Record type is the mutable per-render state a binder writes coordinates
// into; renderers read the same record to echo values and errors back.
package form
