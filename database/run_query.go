// database/run_query.go
package database

import (
	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// ListRuns возвращает последние запуски, новые первыми
func (s *Store) ListRuns(limit int) ([]models.ETLRunLog, error) {
	return s.runs.ListRuns(limit)
}

// LatestRun возвращает последний успешный запуск или nil
func (s *Store) LatestRun() (*models.ETLRunLog, error) {
	return s.runs.GetLastSuccessfulRun()
}

// GetRun возвращает запуск по UUID или nil
func (s *Store) GetRun(runID string) (*models.ETLRunLog, error) {
	return s.runs.GetRun(runID)
}

// RunStats возвращает сводную статистику запусков
func (s *Store) RunStats() (*models.ETLStateMonitor, error) {
	return s.runs.GetETLStateMonitor()
}
