package events

import (
	"time"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventScaffoldAssembled    EventType = "scaffold_assembled"
	EventScaffoldDisassembled EventType = "scaffold_disassembled"
	EventProjectCreated       EventType = "project_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ScaffoldAssembledPayload payload.
type ScaffoldAssembledPayload struct {
	ScaffoldID         int64   `json:"scaffold_id"`
	ProjectID          int64   `json:"project_id"`
	CubicMeters        float64 `json:"cubic_meters"`
	ProgressPercentage int     `json:"progress_percentage"`
}

// ScaffoldDisassembledPayload payload.
type ScaffoldDisassembledPayload struct {
	ScaffoldID int64 `json:"scaffold_id"`
	ProjectID  int64 `json:"project_id"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	ProjectID int64  `json:"project_id"`
	ClientID  int64  `json:"client_id"`
	Name      string `json:"name"`
}
