package transform

import (
	"testing"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"Family planning\nservices", "Family planning services"},
		{"Family  planning\r\n\tand   health", "Family planning and health"},
		{"72038819C00003\n72061121C00001", "72038819C00003 72061121C00001"},
		{"\n\n", ""},
	}

	for _, tt := range tests {
		got := NormalizeText(tt.in)
		assert.Equal(t, tt.want, got, "NormalizeText(%q)", tt.in)
		assert.Equal(t, got, NormalizeText(got), "повторная нормализация ничего не меняет")
	}
}

func TestMerge_FundedFirstNoDedup(t *testing.T) {
	funded := []models.ContractRecord{{AwardID: "F1", Type: models.RecordTypeFunded}, {AwardID: "X", Type: models.RecordTypeFunded}}
	defunded := []models.ContractRecord{{AwardID: "X", Type: models.RecordTypeDefund}}

	merged := Merge(funded, defunded)
	assert.Equal(t, []string{"F1", "X", "X"}, awardIDs(merged))
	assert.Equal(t, models.RecordTypeDefund, merged[2].Type)
	assert.Empty(t, Merge(nil, nil))
}

func TestNormalizeRecords_Idempotent(t *testing.T) {
	records := []models.ContractRecord{
		{
			AwardID:         " 720FDA19C00005 ",
			ContractID:      "720FDA19C00005",
			Vendor:          "World Health\nOrganization",
			Contract:        "Malaria   commodity\nprocurement",
			EstimatedCost:   utils.ParseCurrency("$500,000.00"),
			StartDate:       utils.ParseDate("3/1/2019"),
			IssuingOffice:   "USAID/\n Kenya",
			Type:            models.RecordTypeFunded,
		},
	}

	once := NormalizeRecords(records)
	twice := NormalizeRecords(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("NormalizeRecords not idempotent (-once +twice):\n%s", diff)
	}

	assert.Equal(t, "720FDA19C00005", once[0].AwardID)
	assert.Equal(t, "World Health Organization", once[0].Vendor)
	assert.Equal(t, "Malaria commodity procurement", once[0].Contract)
	assert.Equal(t, "USAID/ Kenya", once[0].IssuingOffice)
	assert.Equal(t, 500000.0, once[0].EstimatedCost.Float64)
	assert.False(t, once[0].ObligatedAmount.Valid)

	// исходная таблица не меняется
	assert.Equal(t, "World Health\nOrganization", records[0].Vendor)
}
