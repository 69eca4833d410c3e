package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is a worksite belonging to a client. Technicians report
// scaffolds against projects they are assigned to.
type Project struct {
	ID        int64
	ClientID  int64
	Name      string
	Status    ProjectStatus
	CreatedAt time.Time

	// ClientName is populated by list/get queries via join.
	ClientName string
}
