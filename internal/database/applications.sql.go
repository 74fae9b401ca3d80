package database

import (
	"context"

	"github.com/google/uuid"
)

const createApplication = `-- name: CreateApplication :execrows
INSERT INTO applications (
candidate_id, job_id, ats_score, status)
VALUES ( $1, $2, $3, 'submitted')
ON CONFLICT (candidate_id, job_id)
DO NOTHING
`

type CreateApplicationParams struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
	AtsScore    float64
}

func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createApplication, arg.CandidateID, arg.JobID, arg.AtsScore)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countApplications = `-- name: CountApplications :one
SELECT COUNT(*) FROM applications WHERE candidate_id=$1 AND job_id=$2
`

type CountApplicationsParams struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
}

func (q *Queries) CountApplications(ctx context.Context, arg CountApplicationsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countApplications, arg.CandidateID, arg.JobID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
