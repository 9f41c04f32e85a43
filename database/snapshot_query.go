// database/snapshot_query.go
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/LilVoxy/usaid_awards/processor"
)

// GetSnapshotCSV возвращает распакованную CSV-выгрузку запуска.
// Если снимка нет, возвращает nil без ошибки.
func (s *Store) GetSnapshotCSV(runID string) ([]byte, error) {
	var data []byte
	var rawSize int
	err := s.db.QueryRow(`
		SELECT data, raw_size FROM contract_snapshots WHERE run_id = ?
	`, runID).Scan(&data, &rawSize)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	csvData, err := processor.DecompressSnapshot(data)
	if err != nil {
		return nil, err
	}
	if len(csvData) != rawSize {
		return nil, fmt.Errorf("снимок %s поврежден: ожидалось %d байт, получено %d", runID, rawSize, len(csvData))
	}

	return csvData, nil
}
