package rollup

import (
	"database/sql"
	"testing"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func sectorRollup(categories ...Category) Rollup {
	return Rollup{Name: models.RollupSector, Field: models.FieldContract, Categories: categories}
}

func TestClassify_NonExclusiveTags(t *testing.T) {
	records := []models.ContractRecord{
		{AwardID: "A1", Contract: "HIV/TB program", EstimatedCost: money(100), Type: models.RecordTypeFunded},
	}
	r := sectorRollup(
		Category{Name: "HIV", Aliases: []string{"hiv"}},
		Category{Name: "TB", Aliases: []string{"tb"}},
	)

	tags, err := Classify(records, r)
	require.NoError(t, err)
	assert.True(t, tags.Matches(0, 0))
	assert.True(t, tags.Matches(0, 1))

	summaries := Aggregate(records, r, tags)
	require.Len(t, summaries, 2)

	// Двойной учет между категориями ожидаем
	var sumContract float64
	for _, s := range summaries {
		sumContract += s.TotalContract
	}
	assert.Equal(t, 200.0, sumContract)
	assert.Greater(t, sumContract, records[0].EstimatedCost.Float64)
}

func TestClassify_CaseInsensitiveSubstring(t *testing.T) {
	records := []models.ContractRecord{
		{AwardID: "A1", Vendor: "World Health Organization supplies", Type: models.RecordTypeFunded},
		{AwardID: "A2", Vendor: "WHO supplies", Type: models.RecordTypeFunded},
	}
	r := Rollup{
		Name:       models.RollupOrganization,
		Field:      models.FieldVendor,
		Categories: []Category{{Name: "WHO", Aliases: []string{"who"}}},
	}

	tags, err := Classify(records, r)
	require.NoError(t, err)
	assert.False(t, tags.Matches(0, 0))
	assert.True(t, tags.Matches(1, 0))
}

func TestClassify_SubstringInsideLongerWord(t *testing.T) {
	records := []models.ContractRecord{{AwardID: "A1", Contract: "Strengthening outbreak response", Type: models.RecordTypeFunded}}
	r := sectorRollup(Category{Name: "TB", Aliases: []string{"tb"}})

	tags, err := Classify(records, r)
	require.NoError(t, err)
	assert.True(t, tags.Matches(0, 0), "tb внутри outbreak тоже совпадает")
}

func TestClassify_UppercaseAliasStillMatches(t *testing.T) {
	records := []models.ContractRecord{{AwardID: "A1", Contract: "malaria bednets", Type: models.RecordTypeFunded}}
	r := sectorRollup(Category{Name: "Malaria", Aliases: []string{"MALARIA"}})

	tags, err := Classify(records, r)
	require.NoError(t, err)
	assert.True(t, tags.Matches(0, 0))
}

func TestAggregate_NullSafeSummation(t *testing.T) {
	records := []models.ContractRecord{
		// value NULL (defund без обязательств), но оценка есть
		{AwardID: "D1", Contract: "nutrition support", EstimatedCost: money(100), Type: models.RecordTypeDefund},
		// все NULL
		{AwardID: "D2", Contract: "nutrition survey", Type: models.RecordTypeDefund},
	}
	r := sectorRollup(
		Category{Name: "Nutrition", Aliases: []string{"nutrition"}},
		Category{Name: "Education", Aliases: []string{"school"}},
	)

	summaries, err := Run(records, r)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, models.CategorySummary{
		Rollup:         models.RollupSector,
		Category:       "Nutrition",
		TotalValue:     0,
		TotalLoss:      0,
		TotalContract:  100,
		MatchedRecords: 2,
	}, summaries[0])

	assert.Equal(t, models.CategorySummary{
		Rollup:   models.RollupSector,
		Category: "Education",
	}, summaries[1])
}

func TestAggregate_ValueAndLoss(t *testing.T) {
	records := []models.ContractRecord{
		{AwardID: "F1", Contract: "malaria", EstimatedCost: money(100), Type: models.RecordTypeFunded},
		{AwardID: "D1", Contract: "malaria", EstimatedCost: money(100), ObligatedAmount: money(40), Type: models.RecordTypeDefund},
	}
	summaries, err := Run(records, sectorRollup(Category{Name: "Malaria", Aliases: []string{"malaria"}}))
	require.NoError(t, err)

	assert.Equal(t, 140.0, summaries[0].TotalValue)
	assert.Equal(t, -60.0, summaries[0].TotalLoss)
	assert.Equal(t, 200.0, summaries[0].TotalContract)
	assert.Equal(t, 2, summaries[0].MatchedRecords)
}

func TestAggregate_PreservesDeclarationOrder(t *testing.T) {
	r := sectorRollup(
		Category{Name: "Zeta", Aliases: []string{"z"}},
		Category{Name: "Alpha", Aliases: []string{"a"}},
		Category{Name: "Mid", Aliases: []string{"m"}},
	)
	summaries, err := Run(nil, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, []string{summaries[0].Category, summaries[1].Category, summaries[2].Category})
}

func TestRollupValidate(t *testing.T) {
	tests := []struct {
		name   string
		rollup Rollup
	}{
		{"empty name", Rollup{Field: models.FieldContract, Categories: []Category{{Name: "A", Aliases: []string{"a"}}}}},
		{"numeric field", Rollup{Name: "x", Field: models.FieldEstimatedCost, Categories: []Category{{Name: "A", Aliases: []string{"a"}}}}},
		{"unknown field", Rollup{Name: "x", Field: "title", Categories: []Category{{Name: "A", Aliases: []string{"a"}}}}},
		{"no categories", Rollup{Name: "x", Field: models.FieldContract}},
		{"duplicate category", Rollup{Name: "x", Field: models.FieldContract, Categories: []Category{
			{Name: "A", Aliases: []string{"a"}}, {Name: "A", Aliases: []string{"b"}},
		}}},
		{"no aliases", Rollup{Name: "x", Field: models.FieldContract, Categories: []Category{{Name: "A"}}}},
		{"empty alias", Rollup{Name: "x", Field: models.FieldContract, Categories: []Category{{Name: "A", Aliases: []string{""}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(nil, tt.rollup)
			assert.ErrorIs(t, err, models.ErrInvalidRollup)
		})
	}
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor(utils.NewNopLogger())
	records := []models.ContractRecord{
		{AwardID: "A1", Vendor: "Chemonics International", EstimatedCost: money(10), Type: models.RecordTypeFunded},
	}
	r := Rollup{Name: models.RollupOrganization, Field: models.FieldVendor, Categories: []Category{
		{Name: "Chemonics", Aliases: []string{"chemonics"}},
		{Name: "DAI", Aliases: []string{"dai global"}},
	}}

	summaries, err := p.Process(records, r)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 10.0, summaries[0].TotalValue)
	assert.Equal(t, 0, summaries[1].MatchedRecords)
}

func TestAggregate_DecimalSums(t *testing.T) {
	records := []models.ContractRecord{
		{AwardID: "F1", Contract: "malaria", EstimatedCost: money(0.1), Type: models.RecordTypeFunded},
		{AwardID: "F2", Contract: "malaria", EstimatedCost: money(0.2), Type: models.RecordTypeFunded},
	}
	summaries, err := Run(records, sectorRollup(Category{Name: "Malaria", Aliases: []string{"malaria"}}))
	require.NoError(t, err)

	assert.Equal(t, 0.3, summaries[0].TotalContract)
	assert.Equal(t, 0.3, summaries[0].TotalValue)
	assert.Equal(t, 0.0, summaries[0].TotalLoss)
}
