package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// ContractLoader отвечает за загрузку строк объединенной таблицы
type ContractLoader struct {
	logger *utils.ETLLogger
}

// NewContractLoader создает новый экземпляр ContractLoader
func NewContractLoader(logger *utils.ETLLogger) *ContractLoader {
	return &ContractLoader{logger: logger}
}

// Load вставляет записи с их позицией в таблице и производными value/loss
func (l *ContractLoader) Load(tx *sql.Tx, runID string, records []models.ContractRecord) error {
	if len(records) == 0 {
		l.logger.Debug("Нет записей контрактов для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки записей контрактов (всего: %d)", len(records))

	stmt, err := tx.Prepare(`
		INSERT INTO contract_records
		(run_id, position, award_id, contract_id, vendor, contract,
		estimated_cost, obligated_amount, start_date, end_date,
		issuing_office, record_type, value, loss)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	batchSize := 100
	for i, r := range records {
		_, err := stmt.Exec(
			runID,
			i,
			r.AwardID,
			r.ContractID,
			r.Vendor,
			r.Contract,
			r.EstimatedCost,
			r.ObligatedAmount,
			r.StartDate,
			r.EndDate,
			r.IssuingOffice,
			string(r.Type),
			r.Value(),
			r.Loss(),
		)
		if err != nil {
			return fmt.Errorf("ошибка при вставке записи %d (%s): %w", i, r.AwardID, err)
		}

		if (i+1)%batchSize == 0 {
			l.logger.Debug("Загружено %d из %d записей контрактов", i+1, len(records))
		}
	}

	l.logger.Info("Загрузка записей контрактов завершена за %v", time.Since(startTime))
	return nil
}
