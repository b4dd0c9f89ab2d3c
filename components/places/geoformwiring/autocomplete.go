// Package geoformwiring connects the places component to form definitions,
// producing the endpoint metadata autocomplete widgets consume.
package geoformwiring

import (
	"strconv"

	"github.com/chimdiadi/go-geoform/components/places"
	"github.com/chimdiadi/go-geoform/pkg/form"
)

// PlacesAutocomplete returns autocomplete settings for a field backed by the
// places component, using the component defaults plus any overrides.
//
// The generated configuration:
// - points at <basePath><RoutePath> (default: <basePath>/api/places)
// - uses resultsPath "data" with value/label/lat/lon mapping
// - includes a default limit param
// - binds the search param to the field's own text
func PlacesAutocomplete(basePath string, fns ...places.OptionFn) form.Autocomplete {
	opts := places.NewOptions(fns...)
	url := places.MountPath(basePath, func(o *places.Options) {
		if o == nil {
			return
		}
		*o = opts
	})

	return form.Autocomplete{
		MinChars: opts.MinChars,
		Endpoint: form.Endpoint{
			URL:         url,
			Method:      "GET",
			ResultsPath: "data",
			Params: map[string]string{
				opts.LimitParam: strconv.Itoa(opts.DefaultLimit),
			},
			DynamicParams: map[string]string{
				opts.SearchParam: form.SelfToken,
			},
			Mapping: form.Mapping{
				Value: "value",
				Label: "label",
				Lat:   "lat",
				Lon:   "lon",
			},
		},
	}
}

// Apply wires the named field on def to the places component endpoint.
func Apply(def *form.Definition, fieldName, basePath string, fns ...places.OptionFn) error {
	return form.ApplyAutocomplete(def, fieldName, PlacesAutocomplete(basePath, fns...))
}
