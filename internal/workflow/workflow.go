// Package workflow turns a scored (candidate, job) task into a state change,
// an optional application record and exactly one decision event.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/ats"
	"github.com/muhammadolammi/atsworker/internal/database"
)

var (
	ErrInvalidRequest    = errors.New("invalid task request")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrJobNotFound       = errors.New("job not found")
	// ErrNoResume means the candidate has no resume file on record.
	ErrNoResume = errors.New("candidate has no resume")
	// ErrPersistence wraps database failures. Nothing was committed and the
	// task can be retried.
	ErrPersistence = errors.New("persistence failure")
)

// Store reads task inputs and commits outcomes.
type Store interface {
	Candidate(ctx context.Context, id uuid.UUID) (database.Candidate, error)
	Job(ctx context.Context, id uuid.UUID) (database.Job, error)
	// RecordOutcome must update the task and insert the application as one
	// unit, ignoring a duplicate (candidate, job) application.
	RecordOutcome(ctx context.Context, arg database.OutcomeParams) (bool, error)
	MarkTaskFailed(ctx context.Context, id uuid.UUID) error
}

// ResumeLoader fetches the candidate's resume as plain text.
type ResumeLoader interface {
	LoadResume(ctx context.Context, c database.Candidate) (string, error)
}

// Publisher delivers decision events.
type Publisher interface {
	Publish(ctx context.Context, d Decision) error
}

// Scorer is satisfied by *ats.Engine.
type Scorer interface {
	Score(in ats.ScoreInput) ats.ScoreResult
}

// Request identifies the task to score.
type Request struct {
	TaskID      string `json:"task_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	JobID       string `json:"job_id" validate:"required,uuid"`
}

type ids struct {
	task, candidate, job uuid.UUID
}

func (r Request) parse(v *validator.Validate) (ids, error) {
	if err := v.Struct(r); err != nil {
		return ids{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	// validated above
	return ids{
		task:      uuid.MustParse(r.TaskID),
		candidate: uuid.MustParse(r.CandidateID),
		job:       uuid.MustParse(r.JobID),
	}, nil
}

// Result is returned to the caller once the outcome is committed.
type Result struct {
	TaskID     uuid.UUID `json:"task_id"`
	Score      float64   `json:"score"`
	AutoSubmit bool      `json:"auto_submit"`
	Status     Status    `json:"status"`
}

// Service runs the decision workflow. It is safe for concurrent use as long
// as its collaborators are.
type Service struct {
	store     Store
	resumes   ResumeLoader
	scorer    Scorer
	publisher Publisher
	logger    *zap.Logger
	validate  *validator.Validate
}

func NewService(store Store, resumes ResumeLoader, scorer Scorer, publisher Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		resumes:   resumes,
		scorer:    scorer,
		publisher: publisher,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Process scores one task and commits the outcome. Lookups and resume
// loading happen before scoring; any failure there returns without touching
// the task. The decision event is published after commit; a publish failure
// is logged but does not undo the committed outcome.
func (s *Service) Process(ctx context.Context, req Request) (Result, Decision, error) {
	id, err := req.parse(s.validate)
	if err != nil {
		return Result{}, Decision{}, err
	}
	log := s.logger.With(
		zap.Stringer("task_id", id.task),
		zap.Stringer("candidate_id", id.candidate),
		zap.Stringer("job_id", id.job),
	)

	candidate, err := s.store.Candidate(ctx, id.candidate)
	if err != nil {
		return Result{}, Decision{}, lookupErr(ErrCandidateNotFound, err)
	}
	job, err := s.store.Job(ctx, id.job)
	if err != nil {
		return Result{}, Decision{}, lookupErr(ErrJobNotFound, err)
	}
	resumeText, err := s.resumes.LoadResume(ctx, candidate)
	if err != nil {
		return Result{}, Decision{}, fmt.Errorf("loading resume for candidate %s: %w", id.candidate, err)
	}

	status := StatusQueued
	if err := Transition(status, StatusScored); err != nil {
		return Result{}, Decision{}, err
	}
	status = StatusScored

	score := s.scorer.Score(ats.ScoreInput{
		ResumeText:      resumeText,
		JobDescription:  job.Description.String,
		JobRequirements: job.Requirements,
	})

	next, kind := StatusQueuedForReview, NeedsReview
	if score.AutoSubmit {
		next, kind = StatusCompleted, AutoSubmitted
	}
	if err := Transition(status, next); err != nil {
		return Result{}, Decision{}, err
	}

	created, err := s.store.RecordOutcome(ctx, database.OutcomeParams{
		TaskID:      id.task,
		CandidateID: id.candidate,
		JobID:       id.job,
		Score:       score.Score,
		Status:      next.Stored(),
		Submit:      score.AutoSubmit,
	})
	if err != nil {
		return Result{}, Decision{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if score.AutoSubmit && !created {
		log.Info("application already exists")
	}

	decision := Decision{
		Kind:        kind,
		TaskID:      id.task,
		CandidateID: id.candidate,
		JobID:       id.job,
		Score:       score.Score,
	}
	if err := s.publisher.Publish(ctx, decision); err != nil {
		log.Error("failed to publish decision", zap.String("topic", decision.Topic()), zap.Error(err))
	}

	log.Info("task scored",
		zap.Float64("score", score.Score),
		zap.String("decision", decision.Topic()),
	)
	return Result{
		TaskID:     id.task,
		Score:      score.Score,
		AutoSubmit: score.AutoSubmit,
		Status:     next,
	}, decision, nil
}

// Fail marks the task as failed. Requests without a valid task id are
// ignored.
func (s *Service) Fail(ctx context.Context, req Request) error {
	id, err := uuid.Parse(req.TaskID)
	if err != nil {
		return nil
	}
	return s.store.MarkTaskFailed(ctx, id)
}

// Retryable reports whether err is a database failure rather than a problem
// with the task itself.
func Retryable(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func lookupErr(sentinel, err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
