package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
)

// Store defines how snapshots are loaded.
type Store interface {
	LoadSchedule(date string) (schedule.DayResponse, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSchedule reads the rows for date (YYYY-MM-DD) from {basePath}/schedule/{date}.json.
func (s *FSStore) LoadSchedule(date string) (schedule.DayResponse, error) {
	if s == nil {
		return schedule.DayResponse{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return schedule.DayResponse{}, errors.New("snapshot date required")
	}
	var payload schedule.DayResponse
	if err := decodeFile(ScheduleSnapshotPath(s.basePath, date), &payload); err != nil {
		return schedule.DayResponse{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	if payload.Rows == nil {
		payload.Rows = []schedule.Row{}
	}
	return payload, nil
}

// Dates lists the snapshot dates recorded in the manifest.
func (s *FSStore) Dates() ([]string, error) {
	m, err := ReadManifest(s.basePath)
	if err != nil {
		return nil, err
	}
	return m.Schedule.Dates, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
