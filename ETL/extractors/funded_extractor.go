package extractors

import (
	"fmt"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// FundedExtractor читает выгрузку действующих контрактов
type FundedExtractor struct {
	logger *utils.ETLLogger
}

// NewFundedExtractor создает новый экземпляр FundedExtractor
func NewFundedExtractor(logger *utils.ETLLogger) *FundedExtractor {
	return &FundedExtractor{logger: logger}
}

// ExtractFunded читает файл и возвращает записи с type=funded
func (e *FundedExtractor) ExtractFunded(path string) ([]models.ContractRecord, error) {
	e.logger.Debug("Начало чтения выгрузки funded: %s", path)

	records, err := extractWithMapping(path, FundedColumns, e.logger)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения выгрузки funded: %w", err)
	}

	e.logger.Debug("Прочитано %d записей funded", len(records))
	return records, nil
}

// extractWithMapping - общий путь чтения для обоих источников
func extractWithMapping(path string, mapping ColumnMapping, logger *utils.ETLLogger) ([]models.ContractRecord, error) {
	table, err := ReadRawTable(mapping.Source, path)
	if err != nil {
		return nil, err
	}

	if table.SkippedBlankRows > 0 || table.SkippedHeaderRows > 0 {
		logger.Debug("Источник %s: пропущено пустых строк %d, повторов заголовка %d",
			mapping.Source, table.SkippedBlankRows, table.SkippedHeaderRows)
	}

	records, anomalies, err := mapping.Apply(table)
	if err != nil {
		return nil, err
	}

	if anomalies.Currency > 0 || anomalies.Dates > 0 {
		logger.Warn("Источник %s: нераспознанных сумм %d, нераспознанных дат %d (записаны как NULL)",
			mapping.Source, anomalies.Currency, anomalies.Dates)
	}

	return records, nil
}
