package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

const autocompletePath = "/v1/geocode/autocomplete"

type autocompleteResponse struct {
	Features []struct {
		Properties struct {
			Formatted string  `json:"formatted"`
			Lat       float64 `json:"lat"`
			Lon       float64 `json:"lon"`
			PlaceID   string  `json:"place_id"`
		} `json:"properties"`
	} `json:"features"`
}

// Autocomplete resolves free text into ordered geocoding suggestions. Text
// shorter than the configured minimum returns an empty slice without issuing
// a request. Results are capped at the configured maximum.
func (c *Client) Autocomplete(ctx context.Context, text string) ([]suggest.Suggestion, error) {
	if c == nil {
		return nil, fmt.Errorf("geoapify: client is nil")
	}
	text = suggest.Normalize(text)
	if len([]rune(text)) < c.opts.MinChars {
		return nil, nil
	}

	query := url.Values{}
	query.Set("text", text)
	query.Set("limit", strconv.Itoa(c.opts.MaxResults))

	endpoint, err := c.endpoint(autocompletePath, query)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "autocomplete", endpoint)
	if err != nil {
		return nil, err
	}

	var parsed autocompleteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("geoapify: decode autocomplete response: %w", err)
	}

	items := make([]suggest.Suggestion, 0, len(parsed.Features))
	for _, feature := range parsed.Features {
		if feature.Properties.Formatted == "" {
			continue
		}
		items = append(items, suggest.Suggestion{
			Label:   feature.Properties.Formatted,
			Lat:     feature.Properties.Lat,
			Lon:     feature.Properties.Lon,
			PlaceID: feature.Properties.PlaceID,
		})
		if len(items) == c.opts.MaxResults {
			break
		}
	}
	return items, nil
}

// Suggest implements suggest.Source.
func (c *Client) Suggest(ctx context.Context, text string) ([]suggest.Suggestion, error) {
	return c.Autocomplete(ctx, text)
}
