// Package handlers wires the HTTP routes to the domain services.
package handlers

import (
	"github.com/ecotrack/backend/internal/auth"
	"github.com/ecotrack/backend/internal/comments"
	"github.com/ecotrack/backend/internal/feed"
	"github.com/ecotrack/backend/internal/reports"
)

// Handlers holds the services the HTTP layer dispatches into
type Handlers struct {
	feed     *feed.Service
	comments *comments.Service
	reports  *reports.Service
	auth     *auth.Service
}

// NewHandlers creates the handler set over its services
func NewHandlers(
	feedSvc *feed.Service,
	commentsSvc *comments.Service,
	reportsSvc *reports.Service,
	authSvc *auth.Service,
) *Handlers {
	return &Handlers{
		feed:     feedSvc,
		comments: commentsSvc,
		reports:  reportsSvc,
		auth:     authSvc,
	}
}
