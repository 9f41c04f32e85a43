// database/summary_query.go
package database

import (
	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// GetSummaries возвращает строки сводки в порядке объявления категорий
func (s *Store) GetSummaries(runID, rollup string) ([]models.CategorySummary, error) {
	rows, err := s.db.Query(`
		SELECT rollup, category, total_value, total_loss, total_contract, matched_records
		FROM category_summaries
		WHERE run_id = ? AND rollup = ?
		ORDER BY position
	`, runID, rollup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.CategorySummary{}
	for rows.Next() {
		var summary models.CategorySummary
		if err := rows.Scan(
			&summary.Rollup, &summary.Category,
			&summary.TotalValue, &summary.TotalLoss, &summary.TotalContract,
			&summary.MatchedRecords,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
