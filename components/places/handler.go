package places

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// HTTPError lets guard errors choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Place is the JSON option shape consumed by autocomplete widgets: the label
// shown to the user, the value submitted with the form, and the coordinate
// pair the selection resolves to.
type Place struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type placesResponse struct {
	Data []Place `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults/clamps are applied.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		query := suggest.Normalize(r.URL.Query().Get(opts.SearchParam))
		limit := clampLimit(parseInt(r.URL.Query().Get(opts.LimitParam)), opts)

		results := []Place{}
		if opts.Source != nil && utf8.RuneCountInString(query) >= opts.MinChars {
			items, err := opts.Source.Suggest(r.Context(), query)
			if err != nil {
				opts.Logger.Warnw("places lookup failed", "query", query, "error", err)
				items = nil
			}
			results = toPlaces(items, limit, opts.Sanitizer)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(placesResponse{Data: results})
	})
}

// toPlaces converts suggestions into the wire shape, sanitising labels and
// applying the limit. The provider place id becomes the submitted value,
// falling back to the label when missing.
func toPlaces(items []suggest.Suggestion, limit int, policy *bluemonday.Policy) []Place {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]Place, 0, len(items))
	for _, item := range items {
		label := item.Label
		if policy != nil {
			label = policy.Sanitize(label)
		}
		value := item.PlaceID
		if value == "" {
			value = label
		}
		out = append(out, Place{
			Label: label,
			Value: value,
			Lat:   item.Lat,
			Lon:   item.Lon,
		})
	}
	return out
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
