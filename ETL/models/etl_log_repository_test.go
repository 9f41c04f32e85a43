package models

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepository(t *testing.T) *SQLETLLogRepository {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "etl.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLETLLogRepository(db, "sqlite")
	require.NoError(t, repo.CreateETLLogTable())
	return repo
}

func TestETLLogRepository_SuccessfulRun(t *testing.T) {
	repo := newTestRepository(t)

	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := repo.CreateLogEntry("run-1", start)
	require.NoError(t, err)

	run, err := repo.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, RunStatusInProgress, run.Status)
	assert.Nil(t, run.EndTime)

	metadata := TransformMetadata{FundedRecords: 4, DefundedRawRecords: 6, DefundedRecords: 8, MergedRecords: 12, OverwritesApplied: 2, SplitsApplied: 2}
	require.NoError(t, repo.UpdateLogEntrySuccess(id, start.Add(90*time.Second), metadata))

	last, err := repo.GetLastSuccessfulRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "run-1", last.RunID)
	assert.Equal(t, RunStatusSuccess, last.Status)
	assert.Equal(t, 4, last.FundedRecords)
	assert.Equal(t, 8, last.DefundedRecords)
	assert.Equal(t, 12, last.MergedRecords)
	assert.Equal(t, 4, last.CorrectionsApplied)
	assert.InDelta(t, 90.0, last.ExecutionTimeSeconds, 0.001)
	require.NotNil(t, last.EndTime)
	assert.True(t, last.EndTime.Equal(start.Add(90*time.Second)))
	assert.True(t, last.StartTime.Equal(start))
}

func TestETLLogRepository_FailedRunKeepsDiagnostic(t *testing.T) {
	repo := newTestRepository(t)

	start := time.Now().UTC()
	id, err := repo.CreateLogEntry("run-failed", start)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateLogEntryFailure(id, start.Add(time.Second), "источник defunded: отсутствует колонка"))

	run, err := repo.GetRun("run-failed")
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, run.Status)
	assert.Equal(t, "источник defunded: отсутствует колонка", run.ErrorMessage)

	last, err := repo.GetLastSuccessfulRun()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestETLLogRepository_ListRunsAndMonitor(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, runID := range []string{"a", "b", "c"} {
		start := base.Add(time.Duration(i) * time.Hour)
		id, err := repo.CreateLogEntry(runID, start)
		require.NoError(t, err)
		if runID == "b" {
			require.NoError(t, repo.UpdateLogEntryFailure(id, start.Add(time.Minute), "boom"))
			continue
		}
		require.NoError(t, repo.UpdateLogEntrySuccess(id, start.Add(2*time.Second), TransformMetadata{MergedRecords: 10}))
	}

	runs, err := repo.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].RunID)
	assert.Equal(t, "b", runs[1].RunID)

	monitor, err := repo.GetETLStateMonitor()
	require.NoError(t, err)
	assert.Equal(t, 2, monitor.TotalSuccessfulRuns)
	assert.Equal(t, 1, monitor.TotalFailedRuns)
	assert.Equal(t, 20, monitor.TotalRecordsProcessed)
	assert.InDelta(t, 2.0, monitor.AvgExecutionTimeSeconds, 0.001)
	require.NotNil(t, monitor.LastSuccessfulRun)
	assert.Equal(t, "c", monitor.LastSuccessfulRun.RunID)
	require.NotNil(t, monitor.LastFailedRun)
	assert.Equal(t, "b", monitor.LastFailedRun.RunID)
}

func TestETLLogRepository_UnknownRun(t *testing.T) {
	repo := newTestRepository(t)

	run, err := repo.GetRun("missing")
	require.NoError(t, err)
	assert.Nil(t, run)

	assert.Error(t, repo.UpdateLogEntrySuccess(42, time.Now(), TransformMetadata{}))
}
