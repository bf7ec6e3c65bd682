package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
)

var fixedNow = time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)

func newTestWriter(t *testing.T, retention int) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retention)
	w.now = func() time.Time { return fixedNow }
	return w
}

func simpleDay(date string) schedule.DayResponse {
	return schedule.NewDayResponse(date, []schedule.Row{
		{DateKey: date, TeamCode: "BOS", OpponentName: "New York Knicks", HomeAway: schedule.Home},
	})
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	if err := w.WriteScheduleSnapshot(date, simpleDay(date)); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(ScheduleSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
