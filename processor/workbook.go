package processor

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/xuri/excelize/v2"
)

// Листы книги Excel
const (
	SheetContracts     = "contracts"
	SheetSectors       = "sectors"
	SheetOrganizations = "organizations"
)

// SummaryHeader - колонки листов со сводками
var SummaryHeader = []string{"category", "total_value", "total_loss", "total_contract", "matched_records"}

// ExportContracts выгружает результат запуска в файл.
// Формат выбирается по расширению: .xlsx - книга с таблицей и двумя сводками,
// иначе CSV только с объединенной таблицей.
func ExportContracts(path string, data *models.TransformedData) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка создания каталога %s: %w", dir, err)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteWorkbook(path, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла выгрузки %s: %w", path, err)
	}
	if err := WriteContractsCSV(file, data.Contracts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteWorkbook сохраняет таблицу и сводки в книгу Excel.
// Суммы пишутся числами, NULL - пустой ячейкой.
func WriteWorkbook(path string, data *models.TransformedData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetContracts); err != nil {
		return fmt.Errorf("ошибка переименования листа: %w", err)
	}
	if err := writeContractsSheet(f, data.Contracts); err != nil {
		return err
	}

	for _, sheet := range []struct {
		name      string
		summaries []models.CategorySummary
	}{
		{SheetSectors, data.Sectors},
		{SheetOrganizations, data.Organizations},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("ошибка создания листа %s: %w", sheet.name, err)
		}
		if err := writeSummarySheet(f, sheet.name, sheet.summaries); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения книги %s: %w", path, err)
	}
	return nil
}

func writeContractsSheet(f *excelize.File, records []models.ContractRecord) error {
	if err := writeRow(f, SheetContracts, 1, toCells(ExportHeader)); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{
			r.AwardID,
			r.ContractID,
			r.Vendor,
			r.Contract,
			amountCell(r.EstimatedCost),
			amountCell(r.ObligatedAmount),
			utils.FormatDate(r.StartDate),
			utils.FormatDate(r.EndDate),
			r.IssuingOffice,
			string(r.Type),
			amountCell(r.Value()),
			amountCell(r.Loss()),
		}
		if err := writeRow(f, SheetContracts, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, summaries []models.CategorySummary) error {
	if err := writeRow(f, sheet, 1, toCells(SummaryHeader)); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{s.Category, s.TotalValue, s.TotalLoss, s.TotalContract, s.MatchedRecords}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("лист %s, ячейка %s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func amountCell(v sql.NullFloat64) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Float64
}
