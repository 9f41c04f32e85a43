package rollup

import (
	"fmt"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// Processor отвечает за расчет сводок по объединенной таблице
type Processor struct {
	logger *utils.ETLLogger
}

// NewProcessor создает новый экземпляр Processor
func NewProcessor(logger *utils.ETLLogger) *Processor {
	return &Processor{logger: logger}
}

// Process считает одну сводку и логирует итоги по категориям
func (p *Processor) Process(records []models.ContractRecord, r Rollup) ([]models.CategorySummary, error) {
	startTime := time.Now()
	p.logger.Info("Расчет сводки %q по полю %s (%d категорий, %d записей)", r.Name, r.Field, len(r.Categories), len(records))

	summaries, err := Run(records, r)
	if err != nil {
		return nil, fmt.Errorf("ошибка при расчете сводки %s: %w", r.Name, err)
	}

	for _, summary := range summaries {
		if summary.MatchedRecords == 0 {
			p.logger.Debug("Сводка %s: категория %q не совпала ни с одной записью", r.Name, summary.Category)
			continue
		}
		p.logger.Debug("Сводка %s: %q - записей %d, value %.2f, loss %.2f, contract %.2f",
			r.Name, summary.Category, summary.MatchedRecords, summary.TotalValue, summary.TotalLoss, summary.TotalContract)
	}

	p.logger.Info("Сводка %q рассчитана за %v", r.Name, time.Since(startTime))
	return summaries, nil
}
