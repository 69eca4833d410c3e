package domain

import "time"

// ScaffoldStatus enumerates assembly states for a scaffold report.
type ScaffoldStatus string

const (
	ScaffoldStatusAssembled    ScaffoldStatus = "assembled"
	ScaffoldStatusDisassembled ScaffoldStatus = "disassembled"
)

// Scaffold is a single assembly report recorded by a technician:
// dimensions, computed volume, progress and photographic evidence,
// optionally closed out by a disassembly event.
type Scaffold struct {
	ID                  int64
	ProjectID           int64
	UserID              int64
	Height              float64
	Width               float64
	Depth               float64
	CubicMeters         float64
	ProgressPercentage  int
	AssemblyNotes       string
	AssemblyImageURL    string
	AssemblyCreatedAt   time.Time
	Status              ScaffoldStatus
	DisassemblyNotes    *string
	DisassemblyImageURL *string
	DisassembledAt      *time.Time

	// Joined display fields, populated by list queries.
	ReporterName string
	ProjectName  string
}

// Volume computes cubic meters from the recorded dimensions.
func Volume(height, width, depth float64) float64 {
	return height * width * depth
}
