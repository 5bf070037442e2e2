// Package backend provides the EcoTrack API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Authentication and JWT session services
// - internal/feed: Cleanup activity feed, points and stats
// - internal/comments: Activity comment threads
// - internal/reports: Waste report lifecycle
// - internal/store: Persistence gateway (database or demo fixtures)
// - internal/database: Database connection and migrations
// - internal/prune: Feed retention sweeps
// - internal/cache: Redis stats caching
// - internal/metrics: Prometheus instrumentation
// - internal/seed: Development data seeding

// See the individual package documentation for detailed API reference.
package backend
