// database/contract_query.go
package database

import (
	"database/sql"

	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// GetContracts возвращает строки таблицы запуска в исходном порядке
func (s *Store) GetContracts(runID string, filter ContractFilter) ([]ContractRow, error) {
	query := `
		SELECT position, award_id, contract_id, vendor, contract,
			estimated_cost, obligated_amount, start_date, end_date,
			issuing_office, record_type, value, loss
		FROM contract_records
		WHERE run_id = ?`
	args := []any{runID}

	if filter.Type != "" {
		query += ` AND record_type = ?`
		args = append(args, filter.Type)
	}
	query += ` ORDER BY position LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []ContractRow{}
	for rows.Next() {
		var row ContractRow
		var estimated, obligated, value, loss sql.NullFloat64
		var start, end sql.NullTime

		if err := rows.Scan(
			&row.Position, &row.AwardID, &row.ContractID, &row.Vendor, &row.Contract,
			&estimated, &obligated, &start, &end,
			&row.IssuingOffice, &row.Type, &value, &loss,
		); err != nil {
			return nil, err
		}

		row.EstimatedCost = nullableFloat(estimated)
		row.ObligatedAmount = nullableFloat(obligated)
		row.StartDate = utils.FormatDate(start)
		row.EndDate = utils.FormatDate(end)
		row.Value = nullableFloat(value)
		row.Loss = nullableFloat(loss)

		contracts = append(contracts, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return contracts, nil
}
