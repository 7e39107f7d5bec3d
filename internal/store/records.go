package store

import (
	"time"

	"github.com/scouthq/scout/internal/detect"
)

// Document names within a project's data directory.
const (
	ProjectRecordFile   = "project-record.json"
	SessionStatsFile    = "session-stats.json"
	DiscoveryReportFile = "discovery-report.json"
)

// ProjectRecord is the persisted classification of a project directory.
// Overwritten wholesale on every session start.
type ProjectRecord struct {
	ProjectPath string        `json:"projectPath"`
	ProjectName string        `json:"projectName"`
	Analysis    detect.Result `json:"analysis"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// SessionStats tracks a single session's lifetime for a project.
// One record per project; each session start overwrites the previous
// session, no history is retained.
type SessionStats struct {
	ProjectPath     string        `json:"projectPath"`
	ProjectName     string        `json:"projectName"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         *time.Time    `json:"endTime,omitempty"`
	DurationSeconds float64       `json:"durationSeconds,omitempty"`
	Analysis        detect.Result `json:"analysis"`
}

// CurrentProject is the global pointer to the most recently active
// project. Singleton, single-writer per invocation, last-wins.
type CurrentProject struct {
	ProjectPath string    `json:"projectPath"`
	ProjectName string    `json:"projectName"`
	DataDir     string    `json:"dataDir"`
	LastAccess  time.Time `json:"lastAccess"`
}

// CurrentProjectFile is the document name of the global pointer,
// stored in the data root rather than a project subdirectory.
const CurrentProjectFile = "current-project.json"
