package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	geoform "github.com/chimdiadi/go-geoform"
	"github.com/chimdiadi/go-geoform/components/places"
	"github.com/chimdiadi/go-geoform/pkg/render"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

func runServe(ctx context.Context, args []string, logger *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	definition := fs.String("definition", "", "form definition YAML (embedded freight quote when empty)")
	assetBase := fs.String("asset-base", "/static/geoform", "mount point for runtime assets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	def, err := loadDefinition(*definition)
	if err != nil {
		return err
	}

	client, err := newGeoapifyClient()
	if err != nil {
		return err
	}

	var source suggest.Source = client
	if redisAddr := os.Getenv(envRedisAddr); redisAddr != "" {
		rc := redis.NewClient(&redis.Options{Addr: redisAddr})
		source = places.NewCachedSource(source, rc, places.WithCacheLogger(logger))
		logger.Infow("suggestion cache enabled", "redis", redisAddr)
	}

	gen, err := geoform.New(geoform.WithAssetBase(*assetBase))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()

	component := places.New(
		places.WithSource(source),
		places.WithLogger(logger),
	)
	placesRoute, err := component.RegisterRoutes(mux, "")
	if err != nil {
		return err
	}

	assetMount := strings.TrimRight(*assetBase, "/") + "/"
	mux.Handle(assetMount, http.StripPrefix(assetMount, http.FileServerFS(geoform.RuntimeAssetsFS())))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		out, err := gen.RenderHTML(r.Context(), def, render.RenderOptions{})
		if err != nil {
			logger.Errorw("render form", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(out)
	})

	server := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	failed := make(chan error, 1)
	go func() {
		logger.Infow("listening", "addr", *addr, "places", placesRoute, "assets", assetMount)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	logger.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func requestLogger(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
