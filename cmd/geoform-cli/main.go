package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	geoform "github.com/chimdiadi/go-geoform"
	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/geoapify"
	"github.com/chimdiadi/go-geoform/pkg/renderers/tui"
)

const (
	envAPIKey    = "GEOAPIFY_API_KEY"
	envRedisAddr = "REDIS_ADDR"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd := os.Args[1]; cmd {
	case "serve":
		err = runServe(ctx, os.Args[2:], logger)
	case "pick":
		err = runPick(ctx, os.Args[2:], logger)
	case "route":
		err = runRoute(ctx, os.Args[2:], logger)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		logger.Errorw("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return base.Sugar()
}

func newGeoapifyClient() (*geoapify.Client, error) {
	key := os.Getenv(envAPIKey)
	if key == "" {
		return nil, fmt.Errorf("%s is not set", envAPIKey)
	}
	return geoapify.New(
		geoapify.WithAPIKey(key),
		geoapify.WithLimiter(rate.NewLimiter(rate.Limit(5), 5)),
	), nil
}

func loadDefinition(path string) (*form.Definition, error) {
	if path == "" {
		return geoform.DefaultDefinition()
	}
	return form.LoadDefinitionFile(path)
}

func usage() {
	fmt.Fprint(os.Stderr, `geoform-cli <command> [flags]

Commands:
  serve   serve the quote form, its runtime assets, and the places API
  pick    interactively pick an origin and print the record as JSON
  route   geocode two places and print the heavy truck route summary

Environment:
  GEOAPIFY_API_KEY   Geoapify API key (required)
  REDIS_ADDR         optional redis address for suggestion caching

Run 'geoform-cli <command> -h' for command flags.
`)
}
