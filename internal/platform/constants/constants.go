// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides fixed values shared across the platform.

Categories:

  - Server Timing: read, write and idle timeouts for the HTTP server.
  - Rate Limiting: burst capacities and IP tracking TTLs.
  - Security: JWT issuer, token lifetimes and cookie names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "blenda-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of every access token.
	AuthIssuer = "blenda.app"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour

	AccessTokenCookieName  = "blenda_access"
	RefreshTokenCookieName = "blenda_refresh"

	// RefreshTokenCookiePath scopes the refresh cookie to the auth routes.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// # Dashboard Paths

const (
	// LoginPath is where unauthenticated browser navigations are sent.
	LoginPath = "/login"

	// TemplatePlaceholder is shown for templates without a thumbnail.
	TemplatePlaceholder = "/video-placeholder.svg"
)

// # Database Schemas

const (
	SchemaStudio = "studio"
	SchemaUsers  = "users"
)

// # Redis Prefixes

const (
	RedisPrefixBrandCatalog = "brand:catalog:"
)
