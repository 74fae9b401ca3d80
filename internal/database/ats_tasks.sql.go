package database

import (
	"context"

	"github.com/google/uuid"
)

const updateTaskScore = `-- name: UpdateTaskScore :execrows
UPDATE ats_tasks
SET original_ats_score=$1,
    status=$2,
    updated_at=NOW()
WHERE id=$3
`

type UpdateTaskScoreParams struct {
	OriginalAtsScore float64
	Status           string
	ID               uuid.UUID
}

func (q *Queries) UpdateTaskScore(ctx context.Context, arg UpdateTaskScoreParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateTaskScore, arg.OriginalAtsScore, arg.Status, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateTaskStatus = `-- name: UpdateTaskStatus :exec
UPDATE ats_tasks
SET status=$1,
    updated_at=NOW()
WHERE id=$2
`

type UpdateTaskStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateTaskStatus(ctx context.Context, arg UpdateTaskStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateTaskStatus, arg.Status, arg.ID)
	return err
}
