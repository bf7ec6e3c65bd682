package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	scheduleDir  = "schedule"
	manifestFile = "manifest.json"
)

// ScheduleSnapshotPath builds the path to a schedule snapshot for a given date.
func ScheduleSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, scheduleDir, fmt.Sprintf("%s.json", date))
}

// ManifestPath builds the path to the manifest under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
