package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/atsworker/internal/workflow"
)

func TestPayload(t *testing.T) {
	d := workflow.Decision{
		Kind:        workflow.AutoSubmitted,
		TaskID:      uuid.MustParse("6f1c2b1e-8a0e-4a4e-9a55-1f3b5c2d7e01"),
		CandidateID: uuid.MustParse("0b7d6c5a-2f4e-4c3b-8d1a-9e8f7a6b5c4d"),
		JobID:       uuid.MustParse("a1b2c3d4-e5f6-4a5b-8c7d-0e1f2a3b4c5d"),
		Score:       91.5,
	}

	body, err := Payload(d)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, map[string]any{
		"task_id":      "6f1c2b1e-8a0e-4a4e-9a55-1f3b5c2d7e01",
		"candidate_id": "0b7d6c5a-2f4e-4c3b-8d1a-9e8f7a6b5c4d",
		"job_id":       "a1b2c3d4-e5f6-4a5b-8c7d-0e1f2a3b4c5d",
		"score":        91.5,
	}, got)
}

func TestNewRedisPublisher_BadURL(t *testing.T) {
	_, err := NewRedisPublisher("http://not-redis")
	assert.Error(t, err)
}

func TestRedisPublisher_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	p := NewRedisPublisherWithClient(client)
	defer p.Close()

	err := p.Publish(context.Background(), workflow.Decision{Kind: workflow.NeedsReview})
	assert.ErrorContains(t, err, "ats:needs_review")
}
