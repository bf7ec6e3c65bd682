package testutil

import (
	"github.com/preston-bernstein/nba-edge-service/internal/app/schedule"
	domainschedule "github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/store"
)

// NewScheduleService builds a schedule service backed by an in-memory store preloaded with rows.
// It has no sources, so Refresh reports the provider as unavailable.
func NewScheduleService(rows []domainschedule.Row) *schedule.Service {
	ms := store.NewMemoryStore()
	if len(rows) > 0 {
		ms.SetRows(rows)
	}
	return schedule.NewService(ms, nil, nil, nil)
}
