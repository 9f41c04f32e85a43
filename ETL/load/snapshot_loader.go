package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/LilVoxy/usaid_awards/processor"
)

// SnapshotFormat - формат сохраняемой выгрузки
const SnapshotFormat = "csv+snappy"

// SnapshotLoader сохраняет объединенную таблицу одним сжатым CSV
type SnapshotLoader struct {
	logger *utils.ETLLogger
}

// NewSnapshotLoader создает новый экземпляр SnapshotLoader
func NewSnapshotLoader(logger *utils.ETLLogger) *SnapshotLoader {
	return &SnapshotLoader{logger: logger}
}

// Load формирует CSV, сжимает его и записывает в contract_snapshots
func (l *SnapshotLoader) Load(tx *sql.Tx, runID string, records []models.ContractRecord) error {
	raw, err := processor.ContractsCSV(records)
	if err != nil {
		return fmt.Errorf("ошибка формирования CSV-выгрузки: %w", err)
	}
	compressed := processor.CompressSnapshot(raw)

	_, err = tx.Exec(`
		INSERT INTO contract_snapshots (run_id, format, raw_size, data, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, SnapshotFormat, len(raw), compressed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка при сохранении снимка: %w", err)
	}

	l.logger.Debug("Снимок сохранен: %d байт, после сжатия %d", len(raw), len(compressed))
	return nil
}
