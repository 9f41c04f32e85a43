package extractors

import (
	"fmt"
	"time"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// Extractor координирует чтение двух выгрузок
type Extractor struct {
	logger            *utils.ETLLogger
	fundedExtractor   *FundedExtractor
	defundedExtractor *DefundedExtractor
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		logger:            logger,
		fundedExtractor:   NewFundedExtractor(logger),
		defundedExtractor: NewDefundedExtractor(logger),
	}
}

// Extract читает обе выгрузки и приводит их к канонической схеме
func (e *Extractor) Extract(fundedPath, defundedPath string) (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var extractedData models.ExtractedData
	var err error

	extractedData.Funded, err = e.fundedExtractor.ExtractFunded(fundedPath)
	if err != nil {
		e.logger.Error("Ошибка при чтении funded: %v", err)
		return nil, fmt.Errorf("ошибка извлечения funded: %w", err)
	}

	extractedData.Defunded, err = e.defundedExtractor.ExtractDefunded(defundedPath)
	if err != nil {
		e.logger.Error("Ошибка при чтении defunded: %v", err)
		return nil, fmt.Errorf("ошибка извлечения defunded: %w", err)
	}

	extractedData.ExtractedAt = time.Now()

	e.logger.LogExtractComplete(
		len(extractedData.Funded),
		len(extractedData.Defunded),
		time.Since(startTime),
	)

	return &extractedData, nil
}
