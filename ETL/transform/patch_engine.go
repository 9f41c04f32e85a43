package transform

import (
	"fmt"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// PatchReport - итоги применения исправлений
type PatchReport struct {
	RowsBefore int
	RowsAfter  int
	Overwrites int
	Splits     int
	Applied    []string
}

// PatchEngine применяет список исправлений к таблице
type PatchEngine struct {
	logger *utils.ETLLogger
}

// NewPatchEngine создает новый экземпляр PatchEngine
func NewPatchEngine(logger *utils.ETLLogger) *PatchEngine {
	return &PatchEngine{logger: logger}
}

// Apply применяет каждое исправление ровно один раз в порядке объявления.
// Исходная таблица не изменяется. Цель исправления должна найтись ровно
// один раз, иначе возвращается *models.CorrectionError.
func (e *PatchEngine) Apply(records []models.ContractRecord, corrections []Correction) ([]models.ContractRecord, PatchReport, error) {
	report := PatchReport{RowsBefore: len(records)}
	patched := models.CloneRecords(records)

	for i, c := range corrections {
		if err := c.validate(); err != nil {
			return nil, report, &models.CorrectionError{Index: i, Correction: c.Describe(), Err: err}
		}

		matches := c.locate(patched)
		if len(matches) != 1 {
			e.logger.Error("Исправление %s: найдено совпадений %d", c.Describe(), len(matches))
			return nil, report, &models.CorrectionError{Index: i, Correction: c.Describe(), Matches: len(matches)}
		}

		var err error
		patched, err = c.apply(patched, matches[0])
		if err != nil {
			return nil, report, &models.CorrectionError{Index: i, Correction: c.Describe(), Matches: 1, Err: err}
		}

		switch c.(type) {
		case SplitRow:
			report.Splits++
		case Overwrite:
			report.Overwrites++
		}
		report.Applied = append(report.Applied, c.Describe())
		e.logger.Debug("Применено исправление %s (строка %d)", c.Describe(), matches[0])
	}

	report.RowsAfter = len(patched)
	if expected := report.RowsBefore + report.Splits; report.RowsAfter != expected {
		return nil, report, fmt.Errorf("нарушена кардинальность после исправлений: ожидалось %d строк, получено %d", expected, report.RowsAfter)
	}

	if err := checkUniqueAwardIDs(patched); err != nil {
		return nil, report, err
	}

	return patched, report, nil
}

// checkUniqueAwardIDs - пустые award_id не сравниваются
func checkUniqueAwardIDs(records []models.ContractRecord) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		id := NormalizeText(r.AwardID)
		if id == "" {
			continue
		}
		if first, exists := seen[id]; exists {
			return fmt.Errorf("%w: %s (строки %d и %d)", models.ErrDuplicateAwardID, id, first, i)
		}
		seen[id] = i
	}
	return nil
}
