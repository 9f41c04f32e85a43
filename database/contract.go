// database/contract.go
package database

import (
	"database/sql"
)

// ContractRow - строка объединенной таблицы в ответе API.
// NULL-значения сумм передаются как null, даты - в формате MM/DD/YYYY.
type ContractRow struct {
	Position        int      `json:"position"`
	AwardID         string   `json:"award_id"`
	ContractID      string   `json:"contract_id"`
	Vendor          string   `json:"vendor"`
	Contract        string   `json:"contract"`
	EstimatedCost   *float64 `json:"estimated_cost"`
	ObligatedAmount *float64 `json:"obligated_amount"`
	StartDate       string   `json:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty"`
	IssuingOffice   string   `json:"issuing_office"`
	Type            string   `json:"type"`
	Value           *float64 `json:"value"`
	Loss            *float64 `json:"loss"`
}

// ContractFilter - параметры выборки строк
type ContractFilter struct {
	Type   string
	Limit  int
	Offset int
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
