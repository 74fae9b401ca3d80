package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const getJob = `-- name: GetJob :one
SELECT id, title, company, description, requirements, created_at FROM jobs WHERE id=$1
`

func (q *Queries) GetJob(ctx context.Context, id uuid.UUID) (Job, error) {
	row := q.db.QueryRowContext(ctx, getJob, id)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Company,
		&i.Description,
		pq.Array(&i.Requirements),
		&i.CreatedAt,
	)
	return i, err
}
