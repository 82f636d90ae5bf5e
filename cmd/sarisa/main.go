// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sarisagroup/sarisa-web/internal/backend"
	"github.com/sarisagroup/sarisa-web/internal/cache"
	"github.com/sarisagroup/sarisa-web/internal/config"
	"github.com/sarisagroup/sarisa-web/internal/content"
	"github.com/sarisagroup/sarisa-web/internal/handler"
	"github.com/sarisagroup/sarisa-web/internal/logging"
	"github.com/sarisagroup/sarisa-web/internal/middleware"
	"github.com/sarisagroup/sarisa-web/internal/render"
	"github.com/sarisagroup/sarisa-web/internal/scheduler"
	"github.com/sarisagroup/sarisa-web/internal/seo"
	"github.com/sarisagroup/sarisa-web/internal/version"
	"github.com/sarisagroup/sarisa-web/web"
)

// warmJobName is the scheduler name of the cache warm-up job.
const warmJobName = "warm-cache"

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "sarisa - Sarisagroup directory frontend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEXT_PUBLIC_API_BASE   Backend API base URL (default: http://localhost:4000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEXT_PUBLIC_SITE_URL   Public site URL for canonical links and sitemap\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEO_ADMIN_TOKEN        Bearer token for the admin SEO fallback (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SARISA_SERVER_PORT     Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SARISA_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SARISA_REDIS_URL       Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SARISA_WARM_SCHEDULE   Cron schedule of the cache warm-up (default: @every 1m, empty disables)\n")
	}

	flag.Parse()

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	cacheCfg := cache.DefaultConfig()
	if cfg.UseRedisCache() {
		cacheCfg.Type = "redis"
		cacheCfg.RedisURL = cfg.RedisURL
	}
	cacheCfg.Prefix = cfg.CachePrefix
	cacheCfg.DefaultTTL = cfg.CacheTTLDuration()
	cacheCfg.MaxSize = cfg.CacheMaxSize

	recordCache, cacheInfo, err := cache.New(context.Background(), cacheCfg, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := recordCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache initialized", "backend", cacheInfo.Backend, "fallback", cacheInfo.IsFallback)

	client := backend.New(backend.Options{
		BaseURL: cfg.APIBaseURL(),
		Token:   cfg.SEOAdminToken,
		Timeout: cfg.APITimeout,
	})
	slog.Info("backend configured", "api", client.BaseURL(), "admin_fallback", client.HasToken())

	fetcher := seo.NewFetcher(client, seo.FetcherOptions{
		Timeout:  cfg.SEOTimeout,
		Cache:    recordCache,
		CacheTTL: cfg.CacheTTLDuration(),
		Logger:   logger,
	})
	contentService := content.NewService(client, content.Options{
		Cache:    recordCache,
		CacheTTL: cfg.CacheTTLDuration(),
	})

	renderer, err := render.New(render.Config{TemplatesFS: web.Templates})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	site := seo.SiteConfig{
		SiteName:      cfg.BrandName,
		SiteURL:       cfg.SiteURL,
		TwitterHandle: cfg.TwitterHandle,
	}

	healthHandler := handler.NewHealthHandler(client, recordCache, cacheInfo, info)

	sched := scheduler.New(logger, cfg.APITimeout+cfg.SEOTimeout)
	if cfg.WarmEnabled() {
		warm := handler.WarmCache(fetcher, contentService)
		if err := sched.Register(warmJobName, "Prefetch SEO records and directory listings", cfg.WarmSchedule, warm); err != nil {
			return fmt.Errorf("registering cache warm-up: %w", err)
		}
		healthHandler.SetJobs(sched)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.WarmEnabled() {
		go func() {
			if err := sched.TriggerNow(warmJobName); err != nil {
				slog.Warn("initial cache warm-up incomplete", "error", err)
			}
		}()
	}

	r := newRouter(routerConfig{
		Frontend:       handler.NewFrontendHandler(fetcher, contentService, renderer, site, logger),
		SEO:            handler.NewSEOHandler(fetcher, contentService, site, cfg.DisallowRobots, logger),
		Health:         healthHandler,
		Security:       middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
