package geoapify

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Waypoint is a single routing stop.
type Waypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks the coordinate against WGS84 bounds.
func (w Waypoint) Validate() error {
	if w.Lat < -90 || w.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", w.Lat)
	}
	if w.Lon < -180 || w.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", w.Lon)
	}
	return nil
}

// ParseWaypoints normalizes the waypoint forms callers pass around: the wire
// string "lat,lon|lat,lon", a JSON array string, []Waypoint, coordinate
// pairs, or maps with lat/lon keys. Every parsed waypoint is validated.
func ParseWaypoints(input any) ([]Waypoint, error) {
	switch typed := input.(type) {
	case nil:
		return nil, fmt.Errorf("geoapify: waypoints are required")
	case string:
		return parseWaypointString(typed)
	case []Waypoint:
		return validateAll(append([]Waypoint(nil), typed...))
	case [][2]float64:
		points := make([]Waypoint, 0, len(typed))
		for _, pair := range typed {
			points = append(points, Waypoint{Lat: pair[0], Lon: pair[1]})
		}
		return validateAll(points)
	case [][]float64:
		points := make([]Waypoint, 0, len(typed))
		for _, pair := range typed {
			wp, err := waypointFromPair(pair)
			if err != nil {
				return nil, err
			}
			points = append(points, wp)
		}
		return validateAll(points)
	case []map[string]any:
		points := make([]Waypoint, 0, len(typed))
		for _, element := range typed {
			wp, err := waypointFromMap(element)
			if err != nil {
				return nil, err
			}
			points = append(points, wp)
		}
		return validateAll(points)
	case []any:
		points := make([]Waypoint, 0, len(typed))
		for _, element := range typed {
			wp, err := waypointFromAny(element)
			if err != nil {
				return nil, err
			}
			points = append(points, wp)
		}
		return validateAll(points)
	default:
		return nil, fmt.Errorf("geoapify: unsupported waypoint input %T", input)
	}
}

// FormatWaypoints renders points in the wire form "lat,lon|lat,lon".
func FormatWaypoints(points []Waypoint) string {
	parts := make([]string, 0, len(points))
	for _, wp := range points {
		parts = append(parts, formatCoord(wp.Lat)+","+formatCoord(wp.Lon))
	}
	return strings.Join(parts, "|")
}

// Path converts waypoints into an orb.LineString in (lon, lat) point order.
func Path(points []Waypoint) orb.LineString {
	line := make(orb.LineString, 0, len(points))
	for _, wp := range points {
		line = append(line, orb.Point{wp.Lon, wp.Lat})
	}
	return line
}

// PathBound returns the bounding box around the waypoints.
func PathBound(points []Waypoint) orb.Bound {
	return Path(points).Bound()
}

func parseWaypointString(raw string) ([]Waypoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("geoapify: waypoints are required")
	}
	if strings.HasPrefix(raw, "[") {
		var decoded []any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil, fmt.Errorf("geoapify: parse waypoint json: %w", err)
		}
		return ParseWaypoints(decoded)
	}

	segments := strings.Split(raw, "|")
	points := make([]Waypoint, 0, len(segments))
	for _, segment := range segments {
		parts := strings.Split(strings.TrimSpace(segment), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("geoapify: malformed waypoint %q", segment)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("geoapify: malformed latitude in %q", segment)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("geoapify: malformed longitude in %q", segment)
		}
		points = append(points, Waypoint{Lat: lat, Lon: lon})
	}
	return validateAll(points)
}

func waypointFromAny(element any) (Waypoint, error) {
	switch typed := element.(type) {
	case Waypoint:
		return typed, nil
	case map[string]any:
		return waypointFromMap(typed)
	case []any:
		pair := make([]float64, 0, len(typed))
		for _, v := range typed {
			number, ok := floatValue(v)
			if !ok {
				return Waypoint{}, fmt.Errorf("geoapify: non-numeric waypoint element %v", v)
			}
			pair = append(pair, number)
		}
		return waypointFromPair(pair)
	case []float64:
		return waypointFromPair(typed)
	default:
		return Waypoint{}, fmt.Errorf("geoapify: unsupported waypoint element %T", element)
	}
}

func waypointFromMap(element map[string]any) (Waypoint, error) {
	lat, latOK := lookupFloat(element, "lat", "latitude")
	lon, lonOK := lookupFloat(element, "lon", "lng", "longitude")
	if !latOK || !lonOK {
		return Waypoint{}, fmt.Errorf("geoapify: waypoint map missing lat/lon keys")
	}
	return Waypoint{Lat: lat, Lon: lon}, nil
}

func waypointFromPair(pair []float64) (Waypoint, error) {
	if len(pair) != 2 {
		return Waypoint{}, fmt.Errorf("geoapify: waypoint pair needs two values, got %d", len(pair))
	}
	return Waypoint{Lat: pair[0], Lon: pair[1]}, nil
}

func lookupFloat(element map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if raw, ok := element[key]; ok {
			if value, ok := floatValue(raw); ok {
				return value, true
			}
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func validateAll(points []Waypoint) ([]Waypoint, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("geoapify: waypoints are required")
	}
	for i, wp := range points {
		if err := wp.Validate(); err != nil {
			return nil, fmt.Errorf("geoapify: waypoint %d: %w", i, err)
		}
	}
	return points, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
