package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// SummaryLoader отвечает за загрузку строк сводок
type SummaryLoader struct {
	logger *utils.ETLLogger
}

// NewSummaryLoader создает новый экземпляр SummaryLoader
func NewSummaryLoader(logger *utils.ETLLogger) *SummaryLoader {
	return &SummaryLoader{logger: logger}
}

// Load сохраняет строки сводки. position - порядок объявления категорий.
func (l *SummaryLoader) Load(tx *sql.Tx, runID string, summaries []models.CategorySummary) error {
	if len(summaries) == 0 {
		l.logger.Debug("Нет строк сводки для загрузки")
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO category_summaries
		(run_id, rollup, position, category, total_value, total_loss, total_contract, matched_records)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for i, s := range summaries {
		_, err := stmt.Exec(runID, s.Rollup, i, s.Category, s.TotalValue, s.TotalLoss, s.TotalContract, s.MatchedRecords)
		if err != nil {
			return fmt.Errorf("ошибка при вставке строки сводки %s/%s: %w", s.Rollup, s.Category, err)
		}
	}

	l.logger.Debug("Загружено строк сводки %s: %d", summaries[0].Rollup, len(summaries))
	return nil
}
