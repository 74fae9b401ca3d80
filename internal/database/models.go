package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID         uuid.UUID
	Name       string
	ResumeKey  sql.NullString
	ResumeMime sql.NullString
	CreatedAt  time.Time
}

type Job struct {
	ID           uuid.UUID
	Title        string
	Company      string
	Description  sql.NullString
	Requirements []string
	CreatedAt    time.Time
}

type AtsTask struct {
	ID               uuid.UUID
	CandidateID      uuid.UUID
	JobID            uuid.UUID
	Status           string
	OriginalAtsScore sql.NullFloat64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Application struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	JobID       uuid.UUID
	AtsScore    float64
	Status      string
	CreatedAt   time.Time
}
