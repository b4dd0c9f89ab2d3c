package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

const routingPath = "/v1/routing"

// Travel modes accepted by the routing endpoint. Heavy truck is the default
// because the client exists to quote freight movements.
const (
	ModeHeavyTruck = "heavy_truck"
	ModeTruck      = "truck"
	ModeDrive      = "drive"
)

// Traffic models supported by the routing endpoint.
const (
	TrafficFreeFlow     = "free_flow"
	TrafficApproximated = "approximated"
)

// RouteRequest describes one routing call. Waypoints must hold at least two
// validated stops; ParseWaypoints produces them from looser inputs.
type RouteRequest struct {
	Waypoints  []Waypoint
	Mode       string
	Units      string
	Traffic    string
	AvoidTolls bool
	MaxSpeed   float64
}

// RouteLeg is the distance/time pair for one segment between waypoints.
type RouteLeg struct {
	DistanceMeters float64 `json:"distance"`
	TimeSeconds    float64 `json:"time"`
}

// RouteSummary is the flattened result of a routing call.
type RouteSummary struct {
	Mode           string     `json:"mode"`
	DistanceMeters float64    `json:"distance"`
	DistanceUnits  string     `json:"distance_units"`
	TimeSeconds    float64    `json:"time"`
	HasTolls       bool       `json:"has_tolls"`
	Legs           []RouteLeg `json:"legs,omitempty"`
}

type routingResponse struct {
	Results []struct {
		Mode          string  `json:"mode"`
		Distance      float64 `json:"distance"`
		DistanceUnits string  `json:"distance_units"`
		Time          float64 `json:"time"`
		Toll          bool    `json:"toll"`
		Legs          []struct {
			Distance float64 `json:"distance"`
			Time     float64 `json:"time"`
		} `json:"legs"`
	} `json:"results"`
}

func (r RouteRequest) query(format string) (url.Values, error) {
	if len(r.Waypoints) < 2 {
		return nil, fmt.Errorf("geoapify: routing needs at least two waypoints, got %d", len(r.Waypoints))
	}
	for i, wp := range r.Waypoints {
		if err := wp.Validate(); err != nil {
			return nil, fmt.Errorf("geoapify: waypoint %d: %w", i, err)
		}
	}

	query := url.Values{}
	query.Set("waypoints", FormatWaypoints(r.Waypoints))
	mode := r.Mode
	if mode == "" {
		mode = ModeHeavyTruck
	}
	query.Set("mode", mode)
	query.Set("format", format)
	if r.Units != "" {
		query.Set("units", r.Units)
	}
	if r.Traffic != "" {
		query.Set("traffic", r.Traffic)
	}
	if r.AvoidTolls {
		query.Set("avoid", "tolls")
	}
	if r.MaxSpeed > 0 {
		query.Set("max_speed", strconv.FormatFloat(r.MaxSpeed, 'f', -1, 64))
	}
	return query, nil
}

// Route runs the routing call and returns the flattened summary of the first
// result. An empty result set is an error because the caller asked for a
// concrete route.
func (c *Client) Route(ctx context.Context, req RouteRequest) (*RouteSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("geoapify: client is nil")
	}
	query, err := req.query("json")
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint(routingPath, query)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "routing", endpoint)
	if err != nil {
		return nil, err
	}

	var parsed routingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("geoapify: decode routing response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("geoapify: routing returned no results")
	}

	first := parsed.Results[0]
	summary := &RouteSummary{
		Mode:           first.Mode,
		DistanceMeters: first.Distance,
		DistanceUnits:  first.DistanceUnits,
		TimeSeconds:    first.Time,
		HasTolls:       first.Toll,
	}
	for _, leg := range first.Legs {
		summary.Legs = append(summary.Legs, RouteLeg{
			DistanceMeters: leg.Distance,
			TimeSeconds:    leg.Time,
		})
	}
	return summary, nil
}

// RouteGeoJSON runs the routing call with format=geojson and returns the
// decoded feature collection, preserving the route geometry for mapping.
func (c *Client) RouteGeoJSON(ctx context.Context, req RouteRequest) (*geojson.FeatureCollection, error) {
	if c == nil {
		return nil, fmt.Errorf("geoapify: client is nil")
	}
	query, err := req.query("geojson")
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint(routingPath, query)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "routing", endpoint)
	if err != nil {
		return nil, err
	}

	collection, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("geoapify: decode routing geojson: %w", err)
	}
	return collection, nil
}
