package store

import (
	"sync"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// MemoryStore keeps a thread-safe snapshot of canonical schedule rows in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   []schedule.Row
	byDate map[string][]int
	byTeam map[teams.Code][]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byDate: make(map[string][]int),
		byTeam: make(map[teams.Code][]int),
	}
}

// Rows returns a copy of all rows in canonical order.
func (s *MemoryStore) Rows() []schedule.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]schedule.Row, len(s.rows))
	copy(result, s.rows)
	return result
}

// RowsForDate returns the rows with the given date key.
func (s *MemoryStore) RowsForDate(date string) []schedule.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pick(s.byDate[date])
}

// RowsForTeam returns the rows describing the given team.
func (s *MemoryStore) RowsForTeam(code teams.Code) []schedule.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pick(s.byTeam[code])
}

// SetRows replaces the existing rows with a new snapshot, sorted canonically.
func (s *MemoryStore) SetRows(rows []schedule.Row) {
	sorted := make([]schedule.Row, len(rows))
	copy(sorted, rows)
	schedule.SortRows(sorted)

	byDate := make(map[string][]int)
	byTeam := make(map[teams.Code][]int)
	for i, row := range sorted {
		byDate[row.DateKey] = append(byDate[row.DateKey], i)
		byTeam[row.TeamCode] = append(byTeam[row.TeamCode], i)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = sorted
	s.byDate = byDate
	s.byTeam = byTeam
}

func (s *MemoryStore) pick(idx []int) []schedule.Row {
	result := make([]schedule.Row, 0, len(idx))
	for _, i := range idx {
		result = append(result, s.rows[i])
	}
	return result
}
