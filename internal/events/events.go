// Package events publishes task decisions to the services that act on them.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/muhammadolammi/atsworker/internal/workflow"
)

// Payload encodes a decision as the flat JSON record consumers expect:
// task_id, candidate_id, job_id and score.
func Payload(d workflow.Decision) ([]byte, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", d.Topic(), err)
	}
	return body, nil
}
