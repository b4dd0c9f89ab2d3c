package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Metadata keys that mark a field as geocoding-aware and describe the options
// endpoint its widget queries. Flat string keys keep Field.Metadata
// serializable everywhere a definition travels.
const (
	MetaAutocomplete = "geo.autocomplete"
	MetaLatField     = "geo.latField"
	MetaLonField     = "geo.lonField"
	MetaMinChars     = "geo.minChars"
	MetaQuietMs      = "geo.quietMs"

	metaEndpointPrefix = "geo.endpoint."
)

// SelfToken is the dynamic-parameter placeholder replaced with the text the
// user has typed when the widget queries its endpoint.
const SelfToken = "{{self}}"

const (
	defaultMinChars = 3
	defaultQuietMs  = 250
	defaultLatField = "origin_lat"
	defaultLonField = "origin_lon"
)

// Mapping names the response keys a widget reads for each option.
type Mapping struct {
	Value string
	Label string
	Lat   string
	Lon   string
}

// Endpoint describes the remote options endpoint behind an autocomplete
// widget. Zero values are omitted when flattened to metadata.
type Endpoint struct {
	URL           string
	Method        string
	ResultsPath   string
	Params        map[string]string
	DynamicParams map[string]string
	Mapping       Mapping
}

// Autocomplete bundles the endpoint with the binder-side settings: which
// fields receive the chosen coordinates, the minimum query length, and the
// debounce quiet interval in milliseconds.
type Autocomplete struct {
	Endpoint Endpoint
	LatField string
	LonField string
	MinChars int
	QuietMs  int
}

// ApplyAutocomplete marks the named field as geocoding-aware and attaches the
// endpoint metadata. Fields that already carry endpoint metadata are left
// untouched. Coordinate target fields present on the definition gain
// latitude/longitude range rules when they have none.
func ApplyAutocomplete(def *Definition, fieldName string, ac Autocomplete) error {
	if def == nil {
		return fmt.Errorf("form: definition is nil")
	}
	target := def.Field(fieldName)
	if target == nil {
		return fmt.Errorf("form: field %q not found", fieldName)
	}
	if strings.TrimSpace(ac.Endpoint.URL) == "" {
		return fmt.Errorf("form: autocomplete for %q missing endpoint url", fieldName)
	}
	if hasEndpointMetadata(target.Metadata) {
		return nil
	}

	if ac.LatField == "" {
		ac.LatField = defaultLatField
	}
	if ac.LonField == "" {
		ac.LonField = defaultLonField
	}
	if ac.MinChars <= 0 {
		ac.MinChars = defaultMinChars
	}
	if ac.QuietMs <= 0 {
		ac.QuietMs = defaultQuietMs
	}

	meta := flattenEndpoint(ac.Endpoint)
	meta[MetaAutocomplete] = "true"
	meta[MetaLatField] = ac.LatField
	meta[MetaLonField] = ac.LonField
	meta[MetaMinChars] = strconv.Itoa(ac.MinChars)
	meta[MetaQuietMs] = strconv.Itoa(ac.QuietMs)

	if target.Metadata == nil {
		target.Metadata = make(map[string]string, len(meta))
	}
	for key, value := range meta {
		target.Metadata[key] = value
	}

	ensureRangeRules(def.Field(ac.LatField), -90, 90)
	ensureRangeRules(def.Field(ac.LonField), -180, 180)
	return nil
}

// IsAutocomplete reports whether the field carries the geocoding marker.
func IsAutocomplete(f Field) bool {
	return f.Metadata[MetaAutocomplete] == "true"
}

// AutocompleteFor re-inflates the autocomplete settings from field metadata.
// The second return is false when the field is not geocoding-aware.
func AutocompleteFor(f Field) (Autocomplete, bool) {
	if !IsAutocomplete(f) && !hasEndpointMetadata(f.Metadata) {
		return Autocomplete{}, false
	}

	ac := Autocomplete{
		LatField: f.Metadata[MetaLatField],
		LonField: f.Metadata[MetaLonField],
		MinChars: intMeta(f.Metadata, MetaMinChars, defaultMinChars),
		QuietMs:  intMeta(f.Metadata, MetaQuietMs, defaultQuietMs),
	}
	if ac.LatField == "" {
		ac.LatField = defaultLatField
	}
	if ac.LonField == "" {
		ac.LonField = defaultLonField
	}

	ep := Endpoint{
		URL:         f.Metadata[metaEndpointPrefix+"url"],
		Method:      f.Metadata[metaEndpointPrefix+"method"],
		ResultsPath: f.Metadata[metaEndpointPrefix+"resultsPath"],
		Mapping: Mapping{
			Value: f.Metadata[metaEndpointPrefix+"mapping.value"],
			Label: f.Metadata[metaEndpointPrefix+"mapping.label"],
			Lat:   f.Metadata[metaEndpointPrefix+"mapping.lat"],
			Lon:   f.Metadata[metaEndpointPrefix+"mapping.lon"],
		},
	}
	for key, value := range f.Metadata {
		switch {
		case strings.HasPrefix(key, metaEndpointPrefix+"params."):
			if ep.Params == nil {
				ep.Params = make(map[string]string)
			}
			ep.Params[strings.TrimPrefix(key, metaEndpointPrefix+"params.")] = value
		case strings.HasPrefix(key, metaEndpointPrefix+"dynamicParams."):
			if ep.DynamicParams == nil {
				ep.DynamicParams = make(map[string]string)
			}
			ep.DynamicParams[strings.TrimPrefix(key, metaEndpointPrefix+"dynamicParams.")] = value
		}
	}
	ac.Endpoint = ep
	return ac, true
}

func hasEndpointMetadata(metadata map[string]string) bool {
	if len(metadata) == 0 {
		return false
	}
	for key := range metadata {
		if strings.HasPrefix(key, metaEndpointPrefix) {
			return true
		}
	}
	return false
}

func flattenEndpoint(ep Endpoint) map[string]string {
	meta := make(map[string]string)

	add := func(key, value string) {
		if value == "" {
			return
		}
		meta[metaEndpointPrefix+key] = value
	}

	add("url", strings.TrimSpace(ep.URL))
	if ep.Method != "" {
		add("method", strings.ToUpper(ep.Method))
	}
	add("resultsPath", strings.TrimSpace(ep.ResultsPath))
	add("mapping.value", strings.TrimSpace(ep.Mapping.Value))
	add("mapping.label", strings.TrimSpace(ep.Mapping.Label))
	add("mapping.lat", strings.TrimSpace(ep.Mapping.Lat))
	add("mapping.lon", strings.TrimSpace(ep.Mapping.Lon))

	for _, key := range sortedKeys(ep.Params) {
		add("params."+key, ep.Params[key])
	}
	for _, key := range sortedKeys(ep.DynamicParams) {
		add("dynamicParams."+key, ep.DynamicParams[key])
	}
	return meta
}

func sortedKeys(in map[string]string) []string {
	if len(in) == 0 {
		return nil
	}
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func intMeta(metadata map[string]string, key string, fallback int) int {
	raw, ok := metadata[key]
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func ensureRangeRules(f *Field, min, max float64) {
	if f == nil {
		return
	}
	for _, rule := range f.Rules {
		if rule.Kind == RuleMin || rule.Kind == RuleMax {
			return
		}
	}
	f.Rules = append(f.Rules,
		Rule{Kind: RuleMin, Value: strconv.FormatFloat(min, 'f', -1, 64)},
		Rule{Kind: RuleMax, Value: strconv.FormatFloat(max, 'f', -1, 64)},
	)
	if f.Type == "" {
		f.Type = FieldTypeNumber
	}
}
