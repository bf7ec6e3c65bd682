package server

import (
	"context"

	"github.com/preston-bernstein/nba-edge-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Syncer is the background snapshot job started alongside the poller.
type Syncer interface {
	Start(ctx context.Context) error
	Stop() error
}
