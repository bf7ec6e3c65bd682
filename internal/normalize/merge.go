package normalize

import (
	"fmt"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
)

// Conflict records an enrichment row that disagreed with a schedule fact already held.
type Conflict struct {
	Key        schedule.RowKey
	Field      string
	Primary    string
	Enrichment string
}

// MergeRows folds enrichment rows into primary. Rows new to primary are added. For rows
// present in both, schedule facts (time, side, stage) keep the primary value and differences
// are reported; enrichment fields fill blanks, and a non-empty broadcast overwrites.
func MergeRows(primary, enrichment []schedule.Row) ([]schedule.Row, []Conflict) {
	merged := make([]schedule.Row, len(primary), len(primary)+len(enrichment))
	copy(merged, primary)
	index := make(map[schedule.RowKey]int, len(merged))
	for i, row := range merged {
		index[row.Key()] = i
	}

	var conflicts []Conflict
	for _, row := range enrichment {
		i, ok := index[row.Key()]
		if !ok {
			index[row.Key()] = len(merged)
			merged = append(merged, row)
			continue
		}
		current := &merged[i]
		conflicts = append(conflicts, factConflicts(*current, row)...)
		if row.Broadcast != "" {
			current.Broadcast = row.Broadcast
		}
		if current.GameID == "" {
			current.GameID = row.GameID
		}
		if current.OpponentCode == "" {
			current.OpponentCode = row.OpponentCode
		}
	}
	schedule.SortRows(merged)
	return merged, conflicts
}

func factConflicts(primary, enrichment schedule.Row) []Conflict {
	var out []Conflict
	add := func(field, a, b string) {
		if a != "" && b != "" && a != b {
			out = append(out, Conflict{Key: primary.Key(), Field: field, Primary: a, Enrichment: b})
		}
	}
	add("isoTimestamp", primary.ISOTimestamp, enrichment.ISOTimestamp)
	add("homeAway", string(primary.HomeAway), string(enrichment.HomeAway))
	if primary.SeasonStage != 0 && enrichment.SeasonStage != 0 {
		add("seasonStageId", fmt.Sprint(int(primary.SeasonStage)), fmt.Sprint(int(enrichment.SeasonStage)))
	}
	return out
}
