package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps the generated queries with transactions and error mapping.
type Store struct {
	db *sql.DB
	q  *Queries
}

// NewStore uses an open connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: New(db)}
}

// Connect opens and pings a Postgres pool.
func Connect(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error reaching db: %w", err)
	}
	return NewStore(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Candidate loads a candidate by id.
func (s *Store) Candidate(ctx context.Context, id uuid.UUID) (Candidate, error) {
	c, err := s.q.GetCandidate(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return c, err
}

// Job loads a job by id.
func (s *Store) Job(ctx context.Context, id uuid.UUID) (Job, error) {
	j, err := s.q.GetJob(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return j, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return j, err
}

// OutcomeParams is the result of scoring one task.
type OutcomeParams struct {
	TaskID      uuid.UUID
	CandidateID uuid.UUID
	JobID       uuid.UUID
	Score       float64
	Status      string
	// Submit creates the application row for (CandidateID, JobID).
	Submit bool
}

// RecordOutcome writes the task score and status and, when requested, the
// application row, in a single transaction. created reports whether a new
// application row was inserted; an existing one for the same candidate and
// job is left untouched.
func (s *Store) RecordOutcome(ctx context.Context, arg OutcomeParams) (created bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	q := s.q.WithTx(tx)
	n, err := q.UpdateTaskScore(ctx, UpdateTaskScoreParams{
		OriginalAtsScore: arg.Score,
		Status:           arg.Status,
		ID:               arg.TaskID,
	})
	if err != nil {
		return false, fmt.Errorf("update task %s: %w", arg.TaskID, err)
	}
	if n == 0 {
		return false, fmt.Errorf("task %s: %w", arg.TaskID, ErrNotFound)
	}

	if arg.Submit {
		n, err := q.CreateApplication(ctx, CreateApplicationParams{
			CandidateID: arg.CandidateID,
			JobID:       arg.JobID,
			AtsScore:    arg.Score,
		})
		if err != nil {
			return false, fmt.Errorf("create application: %w", err)
		}
		created = n > 0
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// MarkTaskFailed flags a task that could not be scored.
func (s *Store) MarkTaskFailed(ctx context.Context, id uuid.UUID) error {
	return s.q.UpdateTaskStatus(ctx, UpdateTaskStatusParams{Status: "failed", ID: id})
}

// ScoringStats summarises the last seven days of tasks.
type ScoringStats struct {
	TotalTasks    int64   `json:"total_tasks"`
	AverageScore  float64 `json:"average_score"`
	AutoSubmitted int64   `json:"auto_submitted"`
	NeedsReview   int64   `json:"needs_review"`
	Completed     int64   `json:"completed"`
	Threshold     int     `json:"threshold"`
}

func (s *Store) ScoringStats(ctx context.Context, threshold int) (ScoringStats, error) {
	row, err := s.q.GetScoringStats(ctx, float64(threshold))
	if err != nil {
		return ScoringStats{}, err
	}
	return ScoringStats{
		TotalTasks:    row.TotalTasks,
		AverageScore:  math.Round(row.AvgScore.Float64*10) / 10,
		AutoSubmitted: row.AutoSubmitted,
		NeedsReview:   row.NeedsReview,
		Completed:     row.Completed,
		Threshold:     threshold,
	}, nil
}
