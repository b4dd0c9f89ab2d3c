package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chimdiadi/go-geoform/pkg/geoapify"
)

func runRoute(ctx context.Context, args []string, logger *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	from := fs.String("from", "", "origin free text")
	to := fs.String("to", "", "destination free text")
	mode := fs.String("mode", geoapify.ModeHeavyTruck, "travel mode")
	avoidTolls := fs.Bool("avoid-tolls", false, "avoid toll roads")
	asGeoJSON := fs.Bool("geojson", false, "print the route FeatureCollection instead of the summary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return errors.New("route: -from and -to are required")
	}

	client, err := newGeoapifyClient()
	if err != nil {
		return err
	}

	var origin, destination geoapify.Waypoint
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		origin, err = geocodeTop(gctx, client, *from)
		return err
	})
	g.Go(func() error {
		var err error
		destination, err = geocodeTop(gctx, client, *to)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	req := geoapify.RouteRequest{
		Waypoints:  []geoapify.Waypoint{origin, destination},
		Mode:       *mode,
		AvoidTolls: *avoidTolls,
	}

	if *asGeoJSON {
		collection, err := client.RouteGeoJSON(ctx, req)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(collection, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	summary, err := client.Route(ctx, req)
	if err != nil {
		return err
	}
	logger.Infow("route computed",
		"from", *from,
		"to", *to,
		"mode", summary.Mode,
		"distance_m", summary.DistanceMeters,
		"time_s", summary.TimeSeconds,
		"tolls", summary.HasTolls,
	)

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// geocodeTop resolves free text to the top autocomplete hit.
func geocodeTop(ctx context.Context, client *geoapify.Client, text string) (geoapify.Waypoint, error) {
	items, err := client.Autocomplete(ctx, text)
	if err != nil {
		return geoapify.Waypoint{}, err
	}
	if len(items) == 0 {
		return geoapify.Waypoint{}, fmt.Errorf("no places match %q", text)
	}
	return geoapify.Waypoint{Lat: items[0].Lat, Lon: items[0].Lon}, nil
}
