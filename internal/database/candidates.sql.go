package database

import (
	"context"

	"github.com/google/uuid"
)

const getCandidate = `-- name: GetCandidate :one
SELECT id, name, resume_key, resume_mime, created_at FROM candidates WHERE id=$1
`

func (q *Queries) GetCandidate(ctx context.Context, id uuid.UUID) (Candidate, error) {
	row := q.db.QueryRowContext(ctx, getCandidate, id)
	var i Candidate
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ResumeKey,
		&i.ResumeMime,
		&i.CreatedAt,
	)
	return i, err
}
