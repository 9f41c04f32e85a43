package transform

import (
	"fmt"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/rollup"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// Transformer координирует процесс преобразования: исправления, объединение,
// нормализация и две сводки
type Transformer struct {
	logger          *utils.ETLLogger
	patchEngine     *PatchEngine
	corrections     []Correction
	sector          rollup.Rollup
	organization    rollup.Rollup
	rollupProcessor *rollup.Processor
}

// NewTransformer создает новый экземпляр Transformer со списком
// исправлений текущей выгрузки defunded
func NewTransformer(logger *utils.ETLLogger, sector, organization rollup.Rollup) *Transformer {
	return &Transformer{
		logger:          logger,
		patchEngine:     NewPatchEngine(logger),
		corrections:     DefundedCorrections(),
		sector:          sector,
		organization:    organization,
		rollupProcessor: rollup.NewProcessor(logger),
	}
}

// WithCorrections заменяет список исправлений
func (t *Transformer) WithCorrections(corrections []Correction) *Transformer {
	t.corrections = corrections
	return t
}

// Transform выполняет полный процесс преобразования
func (t *Transformer) Transform(extractedData *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	transformedData := &models.TransformedData{}

	// 1. Исправление поврежденных строк defunded
	t.logger.Info("Применение исправлений к defunded (%d)...", len(t.corrections))
	defunded, report, err := t.patchEngine.Apply(extractedData.Defunded, t.corrections)
	if err != nil {
		t.logger.Error("Ошибка при применении исправлений: %v", err)
		return nil, fmt.Errorf("ошибка при применении исправлений: %w", err)
	}
	t.logger.Info("Исправления применены: замен %d, разделений %d, строк %d -> %d",
		report.Overwrites, report.Splits, report.RowsBefore, report.RowsAfter)

	// 2. Объединение и нормализация текста
	t.logger.Info("Объединение таблиц и нормализация текста...")
	transformedData.Contracts = NormalizeRecords(Merge(extractedData.Funded, defunded))

	for i, r := range transformedData.Contracts {
		if !r.Type.Valid() {
			return nil, fmt.Errorf("строка %d: недопустимый тип записи %q", i, r.Type)
		}
	}

	// 3. Отраслевая сводка
	t.logger.Info("Расчет отраслевой сводки...")
	transformedData.Sectors, err = t.rollupProcessor.Process(transformedData.Contracts, t.sector)
	if err != nil {
		t.logger.Error("Ошибка при расчете отраслевой сводки: %v", err)
		return nil, fmt.Errorf("ошибка при расчете отраслевой сводки: %w", err)
	}

	// 4. Сводка по организациям
	t.logger.Info("Расчет сводки по организациям...")
	transformedData.Organizations, err = t.rollupProcessor.Process(transformedData.Contracts, t.organization)
	if err != nil {
		t.logger.Error("Ошибка при расчете сводки по организациям: %v", err)
		return nil, fmt.Errorf("ошибка при расчете сводки по организациям: %w", err)
	}

	transformedData.Metadata = models.TransformMetadata{
		FundedRecords:      len(extractedData.Funded),
		DefundedRawRecords: len(extractedData.Defunded),
		DefundedRecords:    len(defunded),
		MergedRecords:      len(transformedData.Contracts),
		OverwritesApplied:  report.Overwrites,
		SplitsApplied:      report.Splits,
	}

	duration := time.Since(startTime)
	t.logger.Info("Фаза Transform завершена. Длительность: %v", duration)

	return transformedData, nil
}
