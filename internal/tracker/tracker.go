// Package tracker records shell command failures, matches new commands
// against past failures, and gates a short list of destructive
// commands.
//
// Records live in a single JSON database with last-write-wins
// semantics. Each record follows a small state machine driven by the
// exit codes of later observations of the same (normalized) command:
//
//	pending -> recurring   third failure with no intervening success
//	pending -> solved      a matching command later exits 0
//	recurring -> solved    same
package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/scouthq/scout/internal/store"
)

// DatabaseFile is the document name of the error database.
const DatabaseFile = "error-database.json"

// Record statuses.
const (
	StatusPending   = "pending"
	StatusRecurring = "recurring"
	StatusSolved    = "solved"
)

// recurringThreshold is the occurrence count at which a pending record
// becomes recurring.
const recurringThreshold = 3

// ErrorRecord is one tracked failure pattern.
type ErrorRecord struct {
	ID            string    `json:"id"`
	Command       string    `json:"command"`
	Pattern       string    `json:"pattern"`
	ErrorMessage  string    `json:"errorMessage"`
	ErrorType     string    `json:"errorType"`
	ErrorCategory string    `json:"errorCategory"`
	Suggestion    string    `json:"suggestion"`
	Project       string    `json:"project"`
	Solution      string    `json:"solution,omitempty"`
	Status        string    `json:"status"`
	Occurrences   int       `json:"occurrences"`
	ExitCode      int       `json:"exitCode"`
	FirstSeen     time.Time `json:"firstSeen"`
	LastSeen      time.Time `json:"lastSeen"`
}

// Database is the on-disk error database document.
type Database struct {
	Version        string        `json:"version"`
	Errors         []ErrorRecord `json:"errors"`
	LastSessionEnd *time.Time    `json:"lastSessionEnd,omitempty"`
	LastUpdated    time.Time     `json:"lastUpdated"`
}

// Outcome describes what Record did with an observation.
type Outcome int

const (
	// OutcomeSkipped: successful command with no prior record to solve.
	OutcomeSkipped Outcome = iota
	// OutcomeNew: a new error record was created.
	OutcomeNew
	// OutcomeRepeat: an existing record's occurrence count was bumped.
	OutcomeRepeat
	// OutcomeRecurring: the bump crossed the recurring threshold.
	OutcomeRecurring
	// OutcomeSolved: one or more records flipped to solved.
	OutcomeSolved
)

// Tracker persists and updates the error database.
type Tracker struct {
	store *store.Store
}

// New creates a Tracker backed by the given store directory.
func New(st *store.Store) *Tracker {
	return &Tracker{store: st}
}

// Load reads the database, returning an empty initialized database when
// none exists or the file is unreadable.
func (t *Tracker) Load() Database {
	var db Database
	if err := t.store.Load(DatabaseFile, &db); err != nil {
		// Any load failure degrades to an empty database; the tracker
		// is advisory and must not fail the hook.
		return emptyDatabase()
	}
	if db.Version == "" {
		db.Version = "1.0"
	}
	return db
}

// Save writes the database, stamping LastUpdated.
func (t *Tracker) Save(db *Database) error {
	db.LastUpdated = time.Now().UTC()
	return t.store.Save(DatabaseFile, db)
}

// Record processes one command observation.
//
// On failure (exit != 0) it either bumps a similar existing record or
// appends a new one. On success it flips matching pending/recurring
// records to solved. The returned record is the one created or
// updated, nil for OutcomeSkipped and OutcomeSolved.
func (t *Tracker) Record(command string, exitCode int, output, project string) (*ErrorRecord, Outcome, error) {
	db := t.Load()
	now := time.Now().UTC()
	pattern := NormalizeCommand(command)

	if exitCode == 0 {
		solved := 0
		for i := range db.Errors {
			record := &db.Errors[i]
			if record.Status == StatusSolved {
				continue
			}
			if record.Pattern == pattern || record.Command == command {
				record.Status = StatusSolved
				record.Solution = command
				record.LastSeen = now
				solved++
			}
		}
		if solved == 0 {
			return nil, OutcomeSkipped, nil
		}
		return nil, OutcomeSolved, t.Save(&db)
	}

	errorType := DetectErrorType(output)
	errorMessage := ExtractErrorMessage(output)

	if existing := findSimilarRecord(db.Errors, pattern, errorType, errorMessage); existing != nil {
		existing.Occurrences++
		existing.LastSeen = now
		existing.ExitCode = exitCode
		outcome := OutcomeRepeat
		if existing.Occurrences >= recurringThreshold && existing.Status != StatusSolved {
			existing.Status = StatusRecurring
			outcome = OutcomeRecurring
		}
		return existing, outcome, t.Save(&db)
	}

	record := ErrorRecord{
		ID:            uuid.NewString(),
		Command:       command,
		Pattern:       pattern,
		ErrorMessage:  errorMessage,
		ErrorType:     errorType,
		ErrorCategory: ErrorCategory(errorType),
		Suggestion:    Suggestion(errorType),
		Project:       project,
		Status:        StatusPending,
		Occurrences:   1,
		ExitCode:      exitCode,
		FirstSeen:     now,
		LastSeen:      now,
	}
	db.Errors = append(db.Errors, record)
	return &db.Errors[len(db.Errors)-1], OutcomeNew, t.Save(&db)
}

// findSimilarRecord matches on identical normalized pattern, or on the
// same error type with the same leading error message text.
func findSimilarRecord(records []ErrorRecord, pattern, errorType, errorMessage string) *ErrorRecord {
	for i := range records {
		record := &records[i]
		if record.Pattern == pattern {
			return record
		}
		if record.ErrorType == errorType && prefix50(record.ErrorMessage) == prefix50(errorMessage) {
			return record
		}
	}
	return nil
}

func prefix50(s string) string {
	return truncate(s, 50)
}

// Recent returns the last limit records, newest last.
func (t *Tracker) Recent(limit int) []ErrorRecord {
	db := t.Load()
	if limit <= 0 || len(db.Errors) <= limit {
		return db.Errors
	}
	return db.Errors[len(db.Errors)-limit:]
}

// MarkSessionEnd stamps the database with a session-end time.
func (t *Tracker) MarkSessionEnd(at time.Time) error {
	db := t.Load()
	db.LastSessionEnd = &at
	return t.Save(&db)
}

// Clear resets the database to empty.
func (t *Tracker) Clear() error {
	db := emptyDatabase()
	return t.Save(&db)
}

func emptyDatabase() Database {
	return Database{Version: "1.0", Errors: []ErrorRecord{}}
}
