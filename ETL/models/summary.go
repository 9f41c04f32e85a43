package models

// CategorySummary - итог по одной категории сводки (сектор или организация)
type CategorySummary struct {
	Rollup         string  `json:"rollup"`
	Category       string  `json:"category"`
	TotalValue     float64 `json:"total_value"`
	TotalLoss      float64 `json:"total_loss"`
	TotalContract  float64 `json:"total_contract"`
	MatchedRecords int     `json:"matched_records"`
}

// Названия сводок
const (
	RollupSector       = "sector"
	RollupOrganization = "organization"
)
