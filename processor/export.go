package processor

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// ExportHeader - колонки CSV-выгрузки: каноническая схема и производные value/loss
var ExportHeader = []string{
	string(models.FieldAwardID),
	string(models.FieldContractID),
	string(models.FieldVendor),
	string(models.FieldContract),
	string(models.FieldEstimatedCost),
	string(models.FieldObligatedAmount),
	string(models.FieldStartDate),
	string(models.FieldEndDate),
	string(models.FieldIssuingOffice),
	string(models.FieldType),
	"value",
	"loss",
}

// WriteContractsCSV пишет таблицу в CSV. NULL записывается пустой ячейкой.
func WriteContractsCSV(w io.Writer, records []models.ContractRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ExportHeader); err != nil {
		return fmt.Errorf("ошибка записи заголовка CSV: %w", err)
	}

	for i, r := range records {
		row := []string{
			r.AwardID,
			r.ContractID,
			r.Vendor,
			r.Contract,
			FormatAmount(r.EstimatedCost),
			FormatAmount(r.ObligatedAmount),
			utils.FormatDate(r.StartDate),
			utils.FormatDate(r.EndDate),
			r.IssuingOffice,
			string(r.Type),
			FormatAmount(r.Value()),
			FormatAmount(r.Loss()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("ошибка записи строки %d в CSV: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ContractsCSV возвращает CSV-выгрузку таблицы в памяти
func ContractsCSV(records []models.ContractRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteContractsCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatAmount - сумма с двумя знаками после точки или пустая строка для NULL
func FormatAmount(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', 2, 64)
}
