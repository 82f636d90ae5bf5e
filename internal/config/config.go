// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the frontend configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBase is used when neither API base variable is set.
const DefaultAPIBase = "http://localhost:4000"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Backend API
	APIBase       string        `env:"NEXT_PUBLIC_API_BASE"`
	APIURL        string        `env:"NEXT_PUBLIC_API_URL"`                   // Used when NEXT_PUBLIC_API_BASE is empty
	SEOAdminToken string        `env:"SEO_ADMIN_TOKEN"`                       // Enables the admin SEO fallback
	APITimeout    time.Duration `env:"SARISA_API_TIMEOUT" envDefault:"5s"`    // Content requests
	SEOTimeout    time.Duration `env:"SARISA_SEO_TIMEOUT" envDefault:"1500ms"` // Each SEO request attempt

	// Public site
	SiteURL        string `env:"NEXT_PUBLIC_SITE_URL"`
	BrandName      string `env:"SARISA_BRAND_NAME" envDefault:"Sarisagroup"`
	TwitterHandle  string `env:"SARISA_TWITTER_HANDLE"`
	DisallowRobots bool   `env:"SARISA_DISALLOW_ROBOTS" envDefault:"false"` // Staging: block all crawlers

	// Server
	ServerHost string `env:"SARISA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SARISA_SERVER_PORT" envDefault:"3000"`
	Env        string `env:"SARISA_ENV" envDefault:"development"`
	LogLevel   string `env:"SARISA_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"SARISA_REDIS_URL"`                         // Optional Redis URL for shared caching
	CachePrefix  string `env:"SARISA_CACHE_PREFIX" envDefault:"sarisa:"` // Redis key prefix
	CacheTTL     int    `env:"SARISA_CACHE_TTL" envDefault:"60"`         // Revalidation window in seconds
	CacheMaxSize int    `env:"SARISA_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Cron schedule of the cache warm-up job; empty disables it
	WarmSchedule string `env:"SARISA_WARM_SCHEDULE" envDefault:"@every 1m"`

	// Rate limiting of public pages (per client IP)
	RateLimitRPS   float64 `env:"SARISA_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"SARISA_RATE_LIMIT_BURST" envDefault:"40"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns the cache TTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// WarmEnabled returns true if the cache warm-up job should run.
func (c Config) WarmEnabled() bool {
	return strings.TrimSpace(c.WarmSchedule) != ""
}

// APIBaseURL returns the backend API root. The configured base is used as is
// when it already ends in /api; otherwise /api is appended.
func (c Config) APIBaseURL() string {
	base := strings.TrimSpace(c.APIBase)
	if base == "" {
		base = strings.TrimSpace(c.APIURL)
	}
	if base == "" {
		base = DefaultAPIBase
	}
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SARISA_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort))
	}
	if c.SEOTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SARISA_SEO_TIMEOUT must be positive, got %s", c.SEOTimeout))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("SARISA_API_TIMEOUT must be positive, got %s", c.APITimeout))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("SARISA_CACHE_TTL must not be negative, got %d", c.CacheTTL))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("SARISA_RATE_LIMIT_RPS and SARISA_RATE_LIMIT_BURST must not be negative"))
	}
	if _, err := url.ParseRequestURI(c.APIBaseURL()); err != nil {
		errs = append(errs, fmt.Errorf("invalid backend API URL %q: %w", c.APIBaseURL(), err))
	}
	if c.SiteURL != "" {
		if u, err := url.Parse(c.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("NEXT_PUBLIC_SITE_URL must be an absolute URL, got %q", c.SiteURL))
		}
	}

	return errors.Join(errs...)
}
