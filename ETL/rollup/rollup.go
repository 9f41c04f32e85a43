package rollup

import (
	"database/sql"
	"strings"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/shopspring/decimal"
)

// Classify помечает каждую запись по каждой категории.
// Запись относится к категории, если поле в нижнем регистре содержит
// хотя бы одно ключевое слово как подстроку (без учета границ слов).
// Категории не взаимоисключающие.
func Classify(records []models.ContractRecord, r Rollup) (Tags, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r = r.Normalized()

	tags := make(Tags, len(records))
	for i, record := range records {
		text, err := record.Text(r.Field)
		if err != nil {
			return nil, err
		}
		text = strings.ToLower(text)

		row := make([]bool, len(r.Categories))
		for j, category := range r.Categories {
			row[j] = containsAny(text, category.Aliases)
		}
		tags[i] = row
	}
	return tags, nil
}

func containsAny(text string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(text, alias) {
			return true
		}
	}
	return false
}

// Aggregate считает итоги по категориям в порядке их объявления.
// NULL считается нулем только при суммировании. Суммы копятся в decimal,
// поэтому итог не зависит от порядка записей.
// Категория без совпадений попадает в результат с нулевыми итогами.
func Aggregate(records []models.ContractRecord, r Rollup, tags Tags) []models.CategorySummary {
	summaries := make([]models.CategorySummary, len(r.Categories))
	for j, category := range r.Categories {
		var value, loss, contract decimal.Decimal
		matched := 0

		for i, record := range records {
			if !tags.Matches(i, j) {
				continue
			}
			matched++
			value = addNullable(value, record.Value())
			loss = addNullable(loss, record.Loss())
			contract = addNullable(contract, record.EstimatedCost)
		}

		summaries[j] = models.CategorySummary{
			Rollup:         r.Name,
			Category:       category.Name,
			TotalValue:     value.InexactFloat64(),
			TotalLoss:      loss.InexactFloat64(),
			TotalContract:  contract.InexactFloat64(),
			MatchedRecords: matched,
		}
	}
	return summaries
}

func addNullable(sum decimal.Decimal, v sql.NullFloat64) decimal.Decimal {
	if !v.Valid {
		return sum
	}
	return sum.Add(decimal.NewFromFloat(v.Float64))
}

// Run классифицирует записи и сразу считает итоги
func Run(records []models.ContractRecord, r Rollup) ([]models.CategorySummary, error) {
	tags, err := Classify(records, r)
	if err != nil {
		return nil, err
	}
	return Aggregate(records, r, tags), nil
}
