// ABOUTME: Entry point for the fabric capacity analyzer backend service
// ABOUTME: Serves the Clos vs full-mesh sizing API over HTTP

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/fabric-capacity-analyzer/backend/cache"
	"github.com/markalston/fabric-capacity-analyzer/backend/config"
	"github.com/markalston/fabric-capacity-analyzer/backend/handlers"
	"github.com/markalston/fabric-capacity-analyzer/backend/logger"
	"github.com/markalston/fabric-capacity-analyzer/backend/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Fabric Capacity Analyzer Backend", "version", handlers.Version)
	slog.Info("Network defaults",
		"num_users", cfg.Defaults.NumUsers,
		"radix", cfg.Defaults.Radix,
		"mesh_fabric_ratio", cfg.Defaults.MeshFabricRatio,
	)

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	h := handlers.NewHandler(cfg, c)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}

// newMux registers every route behind the middleware chain, plus an OPTIONS
// route per path so CORS preflight requests are answered.
func newMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled", "requests_per_minute", cfg.RateLimitDefault)
	}
	cors := middleware.CORSWithConfig(cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	preflight := make(map[string]bool)

	for _, route := range h.Routes() {
		handler := middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Recover,
			cors,
			middleware.RateLimit(limiter, middleware.ClientIP, route.Cost),
		)
		mux.HandleFunc(route.Pattern(), handler)

		if !preflight[route.Path] {
			preflight[route.Path] = true
			mux.HandleFunc(http.MethodOptions+" "+route.Path, middleware.Chain(
				func(w http.ResponseWriter, r *http.Request) {},
				middleware.LogRequest,
				cors,
			))
		}
	}

	return mux
}
