// Package geoapify is a small client for the Geoapify geocoding and routing
// APIs. Autocomplete satisfies the suggest.Source interface so the client
// plugs straight into binders and option endpoints; Route and RouteGeoJSON
// cover heavy-truck distance summaries and route geometry.
package geoapify
