package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{40, "40.00"},
		{1000, "1,000.00"},
		{1000100, "1,000,100.00"},
		{-1350000, "-1,350,000.00"},
		{245000000.5, "245,000,000.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in))
	}
}

func TestRenderSummaries_KeepsOrder(t *testing.T) {
	out := RenderSummaries("Сводка по организациям", []models.CategorySummary{
		{Category: "Chemonics", TotalValue: 1400000, TotalLoss: -800000, TotalContract: 2200000, MatchedRecords: 2},
		{Category: "UN Agencies"},
	})

	assert.Contains(t, out, "Сводка по организациям")
	assert.Contains(t, out, "1,400,000.00")
	assert.Contains(t, out, "-800,000.00")

	chemonics := strings.Index(out, "Chemonics")
	un := strings.Index(out, "UN Agencies")
	require.NotEqual(t, -1, chemonics)
	require.NotEqual(t, -1, un)
	assert.Less(t, chemonics, un)
}

func TestWriteRun(t *testing.T) {
	data := &models.TransformedData{
		Sectors:       []models.CategorySummary{{Category: "Malaria", TotalContract: 500000, MatchedRecords: 1}},
		Organizations: []models.CategorySummary{{Category: "DAI"}},
		Metadata:      models.TransformMetadata{FundedRecords: 4, DefundedRawRecords: 6, DefundedRecords: 8, MergedRecords: 12, OverwritesApplied: 2, SplitsApplied: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRun(&buf, "run-1", data))

	out := buf.String()
	assert.Contains(t, out, "Запуск run-1")
	assert.Contains(t, out, "всего: 12")
	assert.Contains(t, out, "Malaria")
	assert.Contains(t, out, "500,000.00")
	assert.Contains(t, out, "DAI")
}
