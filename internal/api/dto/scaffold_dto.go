package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// CreateScaffoldRequest carries the form fields of an assembly report.
// The photo travels separately as a multipart file.
type CreateScaffoldRequest struct {
	ProjectID          int64   `json:"project_id"`
	Height             float64 `json:"height"`
	Width              float64 `json:"width"`
	Depth              float64 `json:"depth"`
	ProgressPercentage int     `json:"progress_percentage"`
	AssemblyNotes      string  `json:"assembly_notes"`
}

// Validate checks the assembly payload.
func (r *CreateScaffoldRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ProjectID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Height, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.Width, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.Depth, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.ProgressPercentage, validation.Min(0), validation.Max(100)),
		validation.Field(&r.AssemblyNotes, validation.Length(0, 1000)),
	)
}

// DisassembleScaffoldRequest carries the form fields of a teardown.
type DisassembleScaffoldRequest struct {
	DisassemblyNotes string `json:"disassembly_notes"`
}

// Validate checks the teardown payload.
func (r *DisassembleScaffoldRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DisassemblyNotes, validation.Length(0, 1000)),
	)
}

// ScaffoldResponse is the public shape of a scaffold report.
type ScaffoldResponse struct {
	ID                  int64      `json:"id"`
	ProjectID           int64      `json:"project_id"`
	UserID              int64      `json:"user_id"`
	Height              float64    `json:"height"`
	Width               float64    `json:"width"`
	Depth               float64    `json:"depth"`
	CubicMeters         float64    `json:"cubic_meters"`
	ProgressPercentage  int        `json:"progress_percentage"`
	AssemblyNotes       string     `json:"assembly_notes"`
	AssemblyImageURL    string     `json:"assembly_image_url"`
	AssemblyCreatedAt   time.Time  `json:"assembly_created_at"`
	Status              string     `json:"status"`
	DisassemblyNotes    *string    `json:"disassembly_notes,omitempty"`
	DisassemblyImageURL *string    `json:"disassembly_image_url,omitempty"`
	DisassembledAt      *time.Time `json:"disassembled_at,omitempty"`
	ReporterName        string     `json:"user_name,omitempty"`
	ProjectName         string     `json:"project_name,omitempty"`
}

// NewScaffoldResponse maps a domain scaffold.
func NewScaffoldResponse(scaffold *domain.Scaffold) ScaffoldResponse {
	return ScaffoldResponse{
		ID:                  scaffold.ID,
		ProjectID:           scaffold.ProjectID,
		UserID:              scaffold.UserID,
		Height:              scaffold.Height,
		Width:               scaffold.Width,
		Depth:               scaffold.Depth,
		CubicMeters:         scaffold.CubicMeters,
		ProgressPercentage:  scaffold.ProgressPercentage,
		AssemblyNotes:       scaffold.AssemblyNotes,
		AssemblyImageURL:    scaffold.AssemblyImageURL,
		AssemblyCreatedAt:   scaffold.AssemblyCreatedAt,
		Status:              string(scaffold.Status),
		DisassemblyNotes:    scaffold.DisassemblyNotes,
		DisassemblyImageURL: scaffold.DisassemblyImageURL,
		DisassembledAt:      scaffold.DisassembledAt,
		ReporterName:        scaffold.ReporterName,
		ProjectName:         scaffold.ProjectName,
	}
}

// NewScaffoldResponses maps a slice of scaffolds.
func NewScaffoldResponses(scaffolds []domain.Scaffold) []ScaffoldResponse {
	out := make([]ScaffoldResponse, 0, len(scaffolds))
	for i := range scaffolds {
		out = append(out, NewScaffoldResponse(&scaffolds[i]))
	}
	return out
}
