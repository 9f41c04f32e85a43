package extractors

import (
	"fmt"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// DefundedExtractor читает выгрузку расторгнутых контрактов.
// Файл получен из PDF постранично, поэтому заголовки содержат переводы строк
// и повторяются в теле таблицы.
type DefundedExtractor struct {
	logger *utils.ETLLogger
}

// NewDefundedExtractor создает новый экземпляр DefundedExtractor
func NewDefundedExtractor(logger *utils.ETLLogger) *DefundedExtractor {
	return &DefundedExtractor{logger: logger}
}

// ExtractDefunded читает файл и возвращает записи с type=defund.
// Поврежденные строки на этом шаге не исправляются.
func (e *DefundedExtractor) ExtractDefunded(path string) ([]models.ContractRecord, error) {
	e.logger.Debug("Начало чтения выгрузки defunded: %s", path)

	records, err := extractWithMapping(path, DefundedColumns, e.logger)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения выгрузки defunded: %w", err)
	}

	e.logger.Debug("Прочитано %d записей defunded", len(records))
	return records, nil
}
