package transform

import (
	"strings"

	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// Merge объединяет таблицы: сначала funded, затем defunded. Дубликаты не удаляются.
func Merge(funded, defunded []models.ContractRecord) []models.ContractRecord {
	merged := make([]models.ContractRecord, 0, len(funded)+len(defunded))
	merged = append(merged, funded...)
	merged = append(merged, defunded...)
	return merged
}

// NormalizeText заменяет переводы строк пробелами, схлопывает серии
// пробельных символов и обрезает края
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeRecords нормализует все текстовые поля и возвращает новую таблицу.
// Суммы и даты не меняются.
func NormalizeRecords(records []models.ContractRecord) []models.ContractRecord {
	out := make([]models.ContractRecord, len(records))
	for i, r := range records {
		r.AwardID = NormalizeText(r.AwardID)
		r.ContractID = NormalizeText(r.ContractID)
		r.Vendor = NormalizeText(r.Vendor)
		r.Contract = NormalizeText(r.Contract)
		r.IssuingOffice = NormalizeText(r.IssuingOffice)
		r.Type = models.RecordType(NormalizeText(string(r.Type)))
		out[i] = r
	}
	return out
}
