package database

import (
	"context"
	"database/sql"
)

const getScoringStats = `-- name: GetScoringStats :one
SELECT
    COUNT(*) AS total_tasks,
    AVG(original_ats_score) AS avg_score,
    COUNT(CASE WHEN original_ats_score >= $1 THEN 1 END) AS auto_submitted,
    COUNT(CASE WHEN original_ats_score < $1 THEN 1 END) AS needs_review,
    COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed
FROM ats_tasks
WHERE created_at > NOW() - INTERVAL '7 days'
`

type GetScoringStatsRow struct {
	TotalTasks    int64
	AvgScore      sql.NullFloat64
	AutoSubmitted int64
	NeedsReview   int64
	Completed     int64
}

func (q *Queries) GetScoringStats(ctx context.Context, threshold float64) (GetScoringStatsRow, error) {
	row := q.db.QueryRowContext(ctx, getScoringStats, threshold)
	var i GetScoringStatsRow
	err := row.Scan(
		&i.TotalTasks,
		&i.AvgScore,
		&i.AutoSubmitted,
		&i.NeedsReview,
		&i.Completed,
	)
	return i, err
}
