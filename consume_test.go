package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/ats"
	"github.com/muhammadolammi/atsworker/internal/database"
	"github.com/muhammadolammi/atsworker/internal/extract"
	"github.com/muhammadolammi/atsworker/internal/storage"
	"github.com/muhammadolammi/atsworker/internal/workflow"
)

func init() {
	retryBaseDelay = 0
}

func TestRetry(t *testing.T) {
	calls := 0
	got, err := retry(3, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("flaky")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	_, err := retry(2, func() (string, error) {
		calls++
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestSettle(t *testing.T) {
	dbErr := errors.Join(workflow.ErrPersistence, errors.New("conn reset"))
	tests := []struct {
		name        string
		err         error
		redelivered bool
		want        ackAction
	}{
		{"success", nil, false, ack},
		{"success after redelivery", nil, true, ack},
		{"db failure first time", dbErr, false, requeue},
		{"db failure redelivered", dbErr, true, drop},
		{"missing candidate", workflow.ErrCandidateNotFound, false, drop},
		{"bad resume", extract.ErrEmptyText, false, drop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, settle(tt.err, tt.redelivered))
		})
	}
}

type stubGetter map[string]string

func (s stubGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := s[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestBucketResumes(t *testing.T) {
	resumes := bucketResumes{
		bucket:   storage.NewBucket(stubGetter{"cv/jane.txt": "  Jane Doe, Go developer \n"}, "cvs"),
		attempts: 2,
	}
	ctx := context.Background()

	text, err := resumes.LoadResume(ctx, database.Candidate{
		ResumeKey: sql.NullString{String: "cv/jane.txt", Valid: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe, Go developer", text)

	_, err = resumes.LoadResume(ctx, database.Candidate{})
	assert.ErrorIs(t, err, workflow.ErrNoResume)

	_, err = resumes.LoadResume(ctx, database.Candidate{
		ResumeKey: sql.NullString{String: "cv/gone.pdf", Valid: true},
	})
	assert.ErrorContains(t, err, "file download error")

	_, err = resumes.LoadResume(ctx, database.Candidate{
		ResumeKey: sql.NullString{String: "cv/photo.png", Valid: true},
	})
	assert.ErrorIs(t, err, extract.ErrUnsupportedType)
}

type memStore struct {
	mu      sync.Mutex
	failed  []uuid.UUID
	outcome *database.OutcomeParams
	err     error
}

func (m *memStore) Candidate(_ context.Context, id uuid.UUID) (database.Candidate, error) {
	return database.Candidate{ID: id, ResumeKey: sql.NullString{String: "cv.txt", Valid: true}}, nil
}

func (m *memStore) Job(_ context.Context, id uuid.UUID) (database.Job, error) {
	return database.Job{ID: id, Description: sql.NullString{String: "Go developer", Valid: true}}, nil
}

func (m *memStore) RecordOutcome(_ context.Context, arg database.OutcomeParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	m.outcome = &arg
	return true, nil
}

func (m *memStore) MarkTaskFailed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, id)
	return nil
}

type textResumes string

func (r textResumes) LoadResume(context.Context, database.Candidate) (string, error) {
	if r == "" {
		return "", extract.ErrEmptyText
	}
	return string(r), nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, workflow.Decision) error { return nil }

type plainLemmas struct{}

func (plainLemmas) Lemma(word string) string { return word }

func newTestWorker(t *testing.T, store *memStore, resumes textResumes) *WorkerConfig {
	t.Helper()
	engine, err := ats.NewEngine(ats.DefaultThreshold, ats.WithLemmatizer(plainLemmas{}))
	require.NoError(t, err)
	return &WorkerConfig{
		Logger:   zap.NewNop(),
		Engine:   engine,
		Workflow: workflow.NewService(store, resumes, engine, nopPublisher{}, zap.NewNop()),
	}
}

func taskBody(task uuid.UUID) []byte {
	return []byte(`{"task_id":"` + task.String() + `","candidate_id":"` + uuid.NewString() + `","job_id":"` + uuid.NewString() + `"}`)
}

func TestHandleDelivery(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("scored", func(t *testing.T) {
		store := &memStore{}
		wc := newTestWorker(t, store, "Go developer with 4 years experience")
		task := uuid.New()

		assert.Equal(t, ack, wc.handleDelivery(ctx, log, amqp.Delivery{Body: taskBody(task)}))
		require.NotNil(t, store.outcome)
		assert.Equal(t, task, store.outcome.TaskID)
		assert.Empty(t, store.failed)
	})

	t.Run("malformed body", func(t *testing.T) {
		store := &memStore{}
		wc := newTestWorker(t, store, "resume")
		assert.Equal(t, drop, wc.handleDelivery(ctx, log, amqp.Delivery{Body: []byte("{not json")}))
		assert.Empty(t, store.failed)
	})

	t.Run("unreadable resume marks failed", func(t *testing.T) {
		store := &memStore{}
		wc := newTestWorker(t, store, "")
		task := uuid.New()

		assert.Equal(t, drop, wc.handleDelivery(ctx, log, amqp.Delivery{Body: taskBody(task)}))
		assert.Equal(t, []uuid.UUID{task}, store.failed)
	})

	t.Run("db failure requeues once", func(t *testing.T) {
		store := &memStore{err: errors.New("connection refused")}
		wc := newTestWorker(t, store, "Go developer")
		task := uuid.New()

		assert.Equal(t, requeue, wc.handleDelivery(ctx, log, amqp.Delivery{Body: taskBody(task)}))
		assert.Empty(t, store.failed)

		assert.Equal(t, drop, wc.handleDelivery(ctx, log, amqp.Delivery{Body: taskBody(task), Redelivered: true}))
		assert.Equal(t, []uuid.UUID{task}, store.failed)
	})
}
