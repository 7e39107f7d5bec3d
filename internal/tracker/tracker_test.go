package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scouthq/scout/internal/store"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(store.New(t.TempDir()))
}

func TestRecordCreatesNewError(t *testing.T) {
	tr := newTestTracker(t)

	record, outcome, err := tr.Record("npm install broken-pkg", 1, "npm ERR! 404 Not Found", "web-app")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, OutcomeNew, outcome)
	assert.Equal(t, StatusPending, record.Status)
	assert.Equal(t, "NPM_ERROR", record.ErrorType)
	assert.Equal(t, "NPM", record.ErrorCategory)
	assert.Equal(t, "npm install {package}", record.Pattern)
	assert.Equal(t, 1, record.Occurrences)
	assert.NotEmpty(t, record.ID)
	assert.Contains(t, record.ErrorMessage, "404 Not Found")
}

func TestRecordBumpsSimilarError(t *testing.T) {
	tr := newTestTracker(t)

	_, _, err := tr.Record("npm install left-pad", 1, "npm ERR! 404 Not Found", "web-app")
	require.NoError(t, err)

	// Different package, same normalized pattern.
	record, outcome, err := tr.Record("npm install right-pad", 1, "npm ERR! 404 Not Found", "web-app")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRepeat, outcome)
	assert.Equal(t, 2, record.Occurrences)

	db := tr.Load()
	assert.Len(t, db.Errors, 1)
}

func TestThirdFailureBecomesRecurring(t *testing.T) {
	tr := newTestTracker(t)

	for i := 0; i < 2; i++ {
		_, outcome, err := tr.Record("npm run build", 1, "build failed: out of memory", "web-app")
		require.NoError(t, err)
		assert.NotEqual(t, OutcomeRecurring, outcome)
	}

	record, outcome, err := tr.Record("npm run build", 1, "build failed: out of memory", "web-app")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecurring, outcome)
	assert.Equal(t, StatusRecurring, record.Status)
	assert.Equal(t, 3, record.Occurrences)
}

func TestSuccessSolvesMatchingErrors(t *testing.T) {
	tr := newTestTracker(t)

	_, _, err := tr.Record("npm install broken-pkg", 1, "npm ERR! 404 Not Found", "web-app")
	require.NoError(t, err)

	_, outcome, err := tr.Record("npm install broken-pkg", 0, "", "web-app")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSolved, outcome)

	db := tr.Load()
	require.Len(t, db.Errors, 1)
	assert.Equal(t, StatusSolved, db.Errors[0].Status)
	assert.Equal(t, "npm install broken-pkg", db.Errors[0].Solution)
}

func TestSuccessWithNoPriorErrorIsSkipped(t *testing.T) {
	tr := newTestTracker(t)

	record, outcome, err := tr.Record("ls -la", 0, "", "web-app")
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, OutcomeSkipped, outcome)

	db := tr.Load()
	assert.Empty(t, db.Errors)
}

func TestSolvedRecordStaysSolved(t *testing.T) {
	tr := newTestTracker(t)

	_, _, err := tr.Record("npm install broken-pkg", 1, "npm ERR! 404 Not Found", "web-app")
	require.NoError(t, err)
	_, _, err = tr.Record("npm install broken-pkg", 0, "", "web-app")
	require.NoError(t, err)

	// A later success must not touch the already-solved record.
	_, outcome, err := tr.Record("npm install broken-pkg", 0, "", "web-app")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestLoadMissingDatabase(t *testing.T) {
	tr := newTestTracker(t)

	db := tr.Load()
	assert.Equal(t, "1.0", db.Version)
	assert.Empty(t, db.Errors)
	assert.Nil(t, db.LastSessionEnd)
}

func TestRecent(t *testing.T) {
	tr := newTestTracker(t)

	commands := []string{"cmd-a", "cmd-b", "cmd-c"}
	for _, cmd := range commands {
		_, _, err := tr.Record(cmd, 1, "error: "+cmd+" went wrong", "proj")
		require.NoError(t, err)
	}

	recent := tr.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "cmd-b", recent[0].Command)
	assert.Equal(t, "cmd-c", recent[1].Command)

	assert.Len(t, tr.Recent(0), 3)
	assert.Len(t, tr.Recent(10), 3)
}

func TestMarkSessionEnd(t *testing.T) {
	tr := newTestTracker(t)

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, tr.MarkSessionEnd(at))

	db := tr.Load()
	require.NotNil(t, db.LastSessionEnd)
	assert.True(t, db.LastSessionEnd.Equal(at))
}

func TestClear(t *testing.T) {
	tr := newTestTracker(t)

	_, _, err := tr.Record("npm run build", 1, "build failed", "proj")
	require.NoError(t, err)
	require.NoError(t, tr.Clear())

	db := tr.Load()
	assert.Empty(t, db.Errors)
}
