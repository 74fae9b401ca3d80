package database

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore connects to TEST_DATABASE_URL, which must already carry the
// sql/schema migrations. Tests are skipped without it.
func setupStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, ctx
}

func seedTask(t *testing.T, ctx context.Context, s *Store) (task, candidate, job uuid.UUID) {
	t.Helper()
	require.NoError(t, s.db.QueryRowContext(ctx,
		`INSERT INTO candidates (name, resume_key, resume_mime) VALUES ('Jane', 'r/jane.pdf', 'application/pdf') RETURNING id`,
	).Scan(&candidate))
	require.NoError(t, s.db.QueryRowContext(ctx,
		`INSERT INTO jobs (title, company, description, requirements) VALUES ('Backend', 'Acme', 'Go and AWS', '{go,aws}') RETURNING id`,
	).Scan(&job))
	require.NoError(t, s.db.QueryRowContext(ctx,
		`INSERT INTO ats_tasks (candidate_id, job_id) VALUES ($1, $2) RETURNING id`, candidate, job,
	).Scan(&task))
	t.Cleanup(func() {
		s.db.ExecContext(ctx, `DELETE FROM candidates WHERE id=$1`, candidate)
		s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id=$1`, job)
	})
	return task, candidate, job
}

func TestStore_Lookups(t *testing.T) {
	s, ctx := setupStore(t)
	_, candidateID, jobID := seedTask(t, ctx, s)

	c, err := s.Candidate(ctx, candidateID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", c.Name)
	assert.Equal(t, "r/jane.pdf", c.ResumeKey.String)

	j, err := s.Job(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "aws"}, j.Requirements)

	_, err = s.Candidate(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Job(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RecordOutcomeIsIdempotentPerPair(t *testing.T) {
	s, ctx := setupStore(t)
	taskID, candidateID, jobID := seedTask(t, ctx, s)

	arg := OutcomeParams{TaskID: taskID, CandidateID: candidateID, JobID: jobID, Score: 93.4, Status: "completed", Submit: true}

	created, err := s.RecordOutcome(ctx, arg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.RecordOutcome(ctx, arg)
	require.NoError(t, err)
	assert.False(t, created)

	n, err := s.q.CountApplications(ctx, CountApplicationsParams{CandidateID: candidateID, JobID: jobID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_RecordOutcomeRollsBack(t *testing.T) {
	s, ctx := setupStore(t)
	_, candidateID, jobID := seedTask(t, ctx, s)

	_, err := s.RecordOutcome(ctx, OutcomeParams{
		TaskID: uuid.New(), CandidateID: candidateID, JobID: jobID, Score: 95, Status: "completed", Submit: true,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.q.CountApplications(ctx, CountApplicationsParams{CandidateID: candidateID, JobID: jobID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_ScoringStats(t *testing.T) {
	s, ctx := setupStore(t)
	taskID, candidateID, jobID := seedTask(t, ctx, s)

	_, err := s.RecordOutcome(ctx, OutcomeParams{TaskID: taskID, CandidateID: candidateID, JobID: jobID, Score: 42, Status: "queued"})
	require.NoError(t, err)

	stats, err := s.ScoringStats(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, 90, stats.Threshold)
	assert.GreaterOrEqual(t, stats.TotalTasks, int64(1))
	assert.GreaterOrEqual(t, stats.NeedsReview, int64(1))
}
