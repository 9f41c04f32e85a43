package models

// TransformedData содержит результат трансформации, готовый к загрузке
type TransformedData struct {
	// Объединенная нормализованная таблица
	Contracts []ContractRecord

	// Сводки в порядке объявления категорий
	Sectors       []CategorySummary
	Organizations []CategorySummary

	// Метаданные
	Metadata TransformMetadata
}

// TransformMetadata содержит счетчики фазы Transform
type TransformMetadata struct {
	FundedRecords      int
	DefundedRawRecords int
	DefundedRecords    int
	MergedRecords      int
	OverwritesApplied  int
	SplitsApplied      int
}

// CorrectionsApplied - общее число примененных исправлений
func (m TransformMetadata) CorrectionsApplied() int {
	return m.OverwritesApplied + m.SplitsApplied
}

// Summaries возвращает сводку по ее названию
func (d *TransformedData) Summaries(rollup string) []CategorySummary {
	switch rollup {
	case RollupSector:
		return d.Sectors
	case RollupOrganization:
		return d.Organizations
	default:
		return nil
	}
}
