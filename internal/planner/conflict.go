package planner

import (
	"context"
	_ "embed"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
)

//go:embed queries/timeblock/find_conflicts.sql
var queryFindConflictsSQL string

// findConflicts returns summaries of the user's blocks overlapping
// [startTime, endTime), excluding excludeID when non-empty (self-exclusion on
// update). Two half-open intervals overlap iff each starts before the other
// ends; touching endpoints do not conflict. Run inside the same transaction
// as the subsequent write; the query locks the matched rows so a concurrent
// writer cannot slip a colliding block in between check and insert.
func findConflicts(ctx context.Context, db pgxscan.Querier, userID string, startTime, endTime time.Time, excludeID string) ([]ConflictSummary, error) {
	conflicts := []ConflictSummary{}
	return conflicts, pgxscan.Select(ctx, db, &conflicts, queryFindConflictsSQL, userID, startTime, endTime, excludeID)
}
