package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists per-day schedule snapshots and the manifest, pruning past days beyond
// the retention window. Future days are never pruned.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteScheduleSnapshot writes one day's rows and prunes old snapshots.
func (w *Writer) WriteScheduleSnapshot(date string, day schedule.DayResponse) error {
	if day.Date == "" {
		day.Date = date
	}
	_, err := w.WriteDays([]schedule.Day{{Date: date, Rows: day.Rows}})
	return err
}

// WriteDays writes a snapshot per day, skipping unchanged files, then refreshes the
// manifest. It returns how many files changed on disk.
func (w *Writer) WriteDays(days []schedule.Day) (int, error) {
	if w == nil {
		return 0, errors.New("snapshot writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(w.basePath, scheduleDir), 0o755); err != nil {
		return 0, err
	}

	written := 0
	for _, day := range days {
		if day.Date == "" {
			return written, errors.New("date required")
		}
		changed, err := w.writeDay(day)
		if err != nil {
			return written, err
		}
		if changed {
			written++
		}
	}
	return written, w.updateManifest()
}

// Prune removes expired snapshots and rewrites the manifest.
func (w *Writer) Prune() error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updateManifest()
}

func (w *Writer) writeDay(day schedule.Day) (bool, error) {
	rows := make([]schedule.Row, len(day.Rows))
	copy(rows, day.Rows)
	schedule.SortRows(rows)

	data, err := json.MarshalIndent(schedule.NewDayResponse(day.Date, rows), "", "  ")
	if err != nil {
		return false, err
	}
	target := ScheduleSnapshotPath(w.basePath, day.Date)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := writeAtomic(target, data); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Writer) updateManifest() error {
	m, _ := readManifest(ManifestPath(w.basePath), w.retentionDays)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	m.Schedule.Dates = w.pruneOldSnapshots(dates)
	m.Schedule.LastRefreshed = w.now().UTC()
	m.Retention.ScheduleDays = w.retentionDays
	return writeManifest(w.basePath, m)
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, scheduleDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string) []string {
	cutoff, _ := timeutil.AddDays(timeutil.DateKey(w.now()), -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, err := timeutil.ParseDate(d); err == nil && d < cutoff {
			_ = os.Remove(ScheduleSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	return keep
}
