package extractors

import (
	"fmt"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// ColumnSpec связывает поле канонической схемы с именем колонки в выгрузке.
// Если имен несколько, используется первое найденное.
type ColumnSpec struct {
	Field models.Field
	Raw   []string
}

// ColumnMapping - полное описание того, что означает каждая колонка источника
type ColumnMapping struct {
	Source         string
	Type           models.RecordType
	Columns        []ColumnSpec
	UnnamedColumns int
}

// FundedColumns - сопоставление колонок выгрузки funded
var FundedColumns = ColumnMapping{
	Source: "funded",
	Type:   models.RecordTypeFunded,
	Columns: []ColumnSpec{
		{Field: models.FieldAwardID, Raw: []string{"Award ID"}},
		{Field: models.FieldContractID, Raw: []string{"Contract ID"}},
		{Field: models.FieldVendor, Raw: []string{"Vendor Name"}},
		{Field: models.FieldContract, Raw: []string{"Contract Description"}},
		{Field: models.FieldEstimatedCost, Raw: []string{"Estimated Cost"}},
		{Field: models.FieldObligatedAmount, Raw: []string{"Obligated Amount"}},
		{Field: models.FieldStartDate, Raw: []string{"Start Date"}},
		{Field: models.FieldEndDate, Raw: []string{"End Date"}},
		{Field: models.FieldIssuingOffice, Raw: []string{"Issuing Office"}},
	},
}

// DefundedColumns - сопоставление колонок выгрузки defunded.
// Имена содержат переводы строк из ячеек PDF-таблицы. "Obligated\nAmout" -
// опечатка исходной таблицы, правильное написание принимается как запасное.
// Одна безымянная колонка отбрасывается.
var DefundedColumns = ColumnMapping{
	Source: "defunded",
	Type:   models.RecordTypeDefund,
	Columns: []ColumnSpec{
		{Field: models.FieldAwardID, Raw: []string{"Award\nID"}},
		{Field: models.FieldContractID, Raw: []string{"Contract\nID"}},
		{Field: models.FieldVendor, Raw: []string{"Vendor"}},
		{Field: models.FieldContract, Raw: []string{"Contract"}},
		{Field: models.FieldEstimatedCost, Raw: []string{"Estimated\nCost"}},
		{Field: models.FieldObligatedAmount, Raw: []string{"Obligated\nAmout", "Obligated\nAmount"}},
		{Field: models.FieldStartDate, Raw: []string{"Start\nDate"}},
		{Field: models.FieldEndDate, Raw: []string{"End\nDate"}},
		{Field: models.FieldIssuingOffice, Raw: []string{"Issuing\nOffice"}},
	},
	UnnamedColumns: 1,
}

// Resolve находит индекс колонки для каждого поля.
// Отсутствующая колонка или неожиданное число безымянных колонок - фатальная ошибка.
func (m ColumnMapping) Resolve(headers []string) (map[models.Field]int, error) {
	positions := make(map[string]int, len(headers))
	unnamed := 0
	for i, h := range headers {
		if IsUnnamedHeader(h) {
			unnamed++
			continue
		}
		if _, exists := positions[h]; !exists {
			positions[h] = i
		}
	}

	if unnamed != m.UnnamedColumns {
		return nil, &models.SchemaError{
			Source: m.Source,
			Detail: fmt.Sprintf("ожидалось безымянных колонок: %d, найдено: %d", m.UnnamedColumns, unnamed),
		}
	}

	index := make(map[models.Field]int, len(m.Columns))
	for _, spec := range m.Columns {
		found := false
		for _, raw := range spec.Raw {
			if i, ok := positions[raw]; ok {
				index[spec.Field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, &models.MissingColumnError{Source: m.Source, Column: spec.Raw[0]}
		}
	}
	return index, nil
}

// ParseAnomalies - непустые денежные ячейки и даты, которые не удалось разобрать
type ParseAnomalies struct {
	Currency int
	Dates    int
}

// Apply переводит строки исходной таблицы в канонические записи.
// Нераспознанные суммы и даты становятся NULL.
func (m ColumnMapping) Apply(table *RawTable) ([]models.ContractRecord, ParseAnomalies, error) {
	var anomalies ParseAnomalies

	index, err := m.Resolve(table.Headers)
	if err != nil {
		return nil, anomalies, err
	}

	records := make([]models.ContractRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := models.ContractRecord{Type: m.Type}

		for _, spec := range m.Columns {
			cell := row[index[spec.Field]]

			switch spec.Field.Kind() {
			case models.KindCurrency:
				value := utils.ParseCurrency(cell)
				if !value.Valid && cell != "" {
					anomalies.Currency++
				}
				err = record.SetCurrency(spec.Field, value)
			case models.KindDate:
				value := utils.ParseDate(cell)
				if !value.Valid && cell != "" {
					anomalies.Dates++
				}
				err = record.SetDate(spec.Field, value)
			default:
				err = record.SetText(spec.Field, cell)
			}
			if err != nil {
				return nil, anomalies, fmt.Errorf("источник %s: %w", m.Source, err)
			}
		}

		records = append(records, record)
	}

	return records, anomalies, nil
}
