package main

import (
	"context"
	"fmt"

	"github.com/muhammadolammi/atsworker/internal/database"
	"github.com/muhammadolammi/atsworker/internal/extract"
	"github.com/muhammadolammi/atsworker/internal/storage"
	"github.com/muhammadolammi/atsworker/internal/workflow"
)

// bucketResumes downloads a candidate's resume file and extracts its text.
type bucketResumes struct {
	bucket   *storage.Bucket
	attempts int
}

func (b bucketResumes) LoadResume(ctx context.Context, c database.Candidate) (string, error) {
	if !c.ResumeKey.Valid || c.ResumeKey.String == "" {
		return "", workflow.ErrNoResume
	}
	mime := c.ResumeMime.String
	if mime == "" {
		var err error
		if mime, err = extract.MimeFromFilename(c.ResumeKey.String); err != nil {
			return "", err
		}
	}

	// network failures are transient
	data, err := retry(b.attempts, func() ([]byte, error) {
		return b.bucket.Get(ctx, c.ResumeKey.String)
	})
	if err != nil {
		return "", fmt.Errorf("file download error: %w", err)
	}
	return extract.Text(mime, data)
}
