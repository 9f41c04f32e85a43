package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const etlRunLogColumns = `
	id, run_id, start_time, end_time, status,
	funded_records, defunded_records, merged_records, corrections_applied,
	COALESCE(error_message, ''), COALESCE(execution_time_seconds, 0)`

// SQLETLLogRepository реализация ETLLogRepository для MySQL и SQLite
type SQLETLLogRepository struct {
	db      *sql.DB
	dialect string
}

// NewSQLETLLogRepository создает новый экземпляр SQLETLLogRepository.
// dialect - "mysql" или "sqlite".
func NewSQLETLLogRepository(db *sql.DB, dialect string) *SQLETLLogRepository {
	return &SQLETLLogRepository{
		db:      db,
		dialect: dialect,
	}
}

// CreateETLLogTable создает таблицу для логирования ETL процесса, если она не существует
func (r *SQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL UNIQUE,
		start_time DATETIME(6) NOT NULL,
		end_time DATETIME(6) NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		funded_records INT DEFAULT 0,
		defunded_records INT DEFAULT 0,
		merged_records INT DEFAULT 0,
		corrections_applied INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds DOUBLE
	);
	`
	if r.dialect == "sqlite" {
		query = `
		CREATE TABLE IF NOT EXISTS etl_run_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			start_time DATETIME NOT NULL,
			end_time DATETIME NULL,
			status TEXT NOT NULL DEFAULT 'in_progress' CHECK (status IN ('success', 'failed', 'in_progress')),
			funded_records INTEGER DEFAULT 0,
			defunded_records INTEGER DEFAULT 0,
			merged_records INTEGER DEFAULT 0,
			corrections_applied INTEGER DEFAULT 0,
			error_message TEXT,
			execution_time_seconds REAL
		);
		`
	}

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *SQLETLLogRepository) CreateLogEntry(runID string, startTime time.Time) (int64, error) {
	query := `
	INSERT INTO etl_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runID, startTime.UTC())
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return id, nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *SQLETLLogRepository) UpdateLogEntrySuccess(id int64, endTime time.Time, metadata TransformMetadata) error {
	executionTime, err := r.executionTime(id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'success',
		funded_records = ?,
		defunded_records = ?,
		merged_records = ?,
		corrections_applied = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(
		query,
		endTime.UTC(),
		metadata.FundedRecords,
		metadata.DefundedRecords,
		metadata.MergedRecords,
		metadata.CorrectionsApplied(),
		executionTime,
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *SQLETLLogRepository) UpdateLogEntryFailure(id int64, endTime time.Time, errorMessage string) error {
	executionTime, err := r.executionTime(id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime.UTC(), errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// executionTime - время выполнения в секундах от сохраненного start_time
func (r *SQLETLLogRepository) executionTime(id int64, endTime time.Time) (float64, error) {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}
	return endTime.Sub(startTime).Seconds(), nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL.
// Если успешных запусков нет, возвращает nil без ошибки.
func (r *SQLETLLogRepository) GetLastSuccessfulRun() (*ETLRunLog, error) {
	query := `SELECT ` + etlRunLogColumns + `
	FROM etl_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC, id DESC
	LIMIT 1
	`

	log, err := scanRunLog(r.db.QueryRow(query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске ETL: %w", err)
	}

	return log, nil
}

// GetRun получает запуск по UUID. Если запуска нет, возвращает nil без ошибки.
func (r *SQLETLLogRepository) GetRun(runID string) (*ETLRunLog, error) {
	query := `SELECT ` + etlRunLogColumns + `
	FROM etl_run_log
	WHERE run_id = ?
	`

	log, err := scanRunLog(r.db.QueryRow(query, runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении запуска ETL %s: %w", runID, err)
	}

	return log, nil
}

// ListRuns возвращает последние запуски ETL
func (r *SQLETLLogRepository) ListRuns(limit int) ([]ETLRunLog, error) {
	query := `SELECT ` + etlRunLogColumns + `
	FROM etl_run_log
	ORDER BY start_time DESC, id DESC
	LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка запусков ETL: %w", err)
	}
	defer rows.Close()

	var logs []ETLRunLog
	for rows.Next() {
		log, err := scanRunLog(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании записи о запуске ETL: %w", err)
		}
		logs = append(logs, *log)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по записям о запусках ETL: %w", err)
	}

	return logs, nil
}

// GetETLStateMonitor получает информацию о текущем состоянии ETL процесса
func (r *SQLETLLogRepository) GetETLStateMonitor() (*ETLStateMonitor, error) {
	lastSuccessful, err := r.GetLastSuccessfulRun()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + etlRunLogColumns + `
	FROM etl_run_log
	WHERE status = 'failed'
	ORDER BY end_time DESC, id DESC
	LIMIT 1
	`

	lastFailed, err := scanRunLog(r.db.QueryRow(query))
	if errors.Is(err, sql.ErrNoRows) {
		lastFailed = nil
	} else if err != nil {
		return nil, fmt.Errorf("ошибка при получении информации о последнем неудачном запуске ETL: %w", err)
	}

	monitor := &ETLStateMonitor{
		LastSuccessfulRun: lastSuccessful,
		LastFailedRun:     lastFailed,
	}

	var avgExecutionTime sql.NullFloat64
	err = r.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			AVG(CASE WHEN status = 'success' THEN execution_time_seconds ELSE NULL END),
			COALESCE(SUM(CASE WHEN status = 'success' THEN merged_records ELSE 0 END), 0)
		FROM etl_run_log
	`).Scan(&monitor.TotalSuccessfulRuns, &monitor.TotalFailedRuns, &avgExecutionTime, &monitor.TotalRecordsProcessed)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков ETL: %w", err)
	}
	monitor.AvgExecutionTimeSeconds = avgExecutionTime.Float64

	return monitor, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunLog(row rowScanner) (*ETLRunLog, error) {
	var log ETLRunLog
	var endTime sql.NullTime

	err := row.Scan(
		&log.ID, &log.RunID, &log.StartTime, &endTime, &log.Status,
		&log.FundedRecords, &log.DefundedRecords, &log.MergedRecords, &log.CorrectionsApplied,
		&log.ErrorMessage, &log.ExecutionTimeSeconds,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		end := endTime.Time
		log.EndTime = &end
	}
	return &log, nil
}
