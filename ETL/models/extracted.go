package models

import (
	"time"
)

// ExtractedData содержит стандартизированные таблицы, прочитанные из двух выгрузок
type ExtractedData struct {
	Funded      []ContractRecord
	Defunded    []ContractRecord
	ExtractedAt time.Time
}
