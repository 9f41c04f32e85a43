package processor

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSnapshotRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("award_id,vendor\n72067420C00001,Chemonics\n"), 100)

	compressed := CompressSnapshot(data)
	assert.Less(t, len(compressed), len(data))

	restored, err := DecompressSnapshot(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, restored)
}

func TestDecompressSnapshot_Corrupt(t *testing.T) {
	_, err := DecompressSnapshot([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestContractsCSV(t *testing.T) {
	records := []models.ContractRecord{
		{
			AwardID:         "72067419C00007",
			ContractID:      "72067419C00007",
			Vendor:          "FHI 360",
			Contract:        "HIV/TB program",
			EstimatedCost:   utils.ParseCurrency("$100.00"),
			ObligatedAmount: utils.ParseCurrency("$40.00"),
			StartDate:       utils.ParseDate("1/1/2020"),
			IssuingOffice:   "USAID/Kenya",
			Type:            models.RecordTypeDefund,
		},
		{
			AwardID:  "720FDA19C00005",
			Vendor:   "World Health Organization, supplies",
			Contract: "Malaria",
			Type:     models.RecordTypeFunded,
		},
	}

	data, err := ContractsCSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ExportHeader, rows[0])
	assert.Equal(t, []string{
		"72067419C00007", "72067419C00007", "FHI 360", "HIV/TB program",
		"100.00", "40.00", "01/01/2020", "", "USAID/Kenya", "defund", "40.00", "-60.00",
	}, rows[1])

	// NULL суммы пустые, loss для funded равен нулю
	assert.Equal(t, "World Health Organization, supplies", rows[2][2])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "", rows[2][10])
	assert.Equal(t, "0.00", rows[2][11])
}

func exportFixture() *models.TransformedData {
	return &models.TransformedData{
		Contracts: []models.ContractRecord{
			{
				AwardID:         "72067419C00007",
				Vendor:          "FHI 360",
				Contract:        "HIV/TB program",
				EstimatedCost:   utils.ParseCurrency("$100.00"),
				ObligatedAmount: utils.ParseCurrency("$40.00"),
				Type:            models.RecordTypeDefund,
			},
			{AwardID: "720FDA19C00005", Vendor: "WHO", Type: models.RecordTypeFunded},
		},
		Sectors: []models.CategorySummary{
			{Rollup: models.RollupSector, Category: "HIV/AIDS", TotalValue: 40, TotalLoss: -60, TotalContract: 100, MatchedRecords: 1},
		},
		Organizations: []models.CategorySummary{
			{Rollup: models.RollupOrganization, Category: "FHI 360", TotalValue: 40, TotalLoss: -60, TotalContract: 100, MatchedRecords: 1},
			{Rollup: models.RollupOrganization, Category: "Chemonics"},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awards.xlsx")
	require.NoError(t, ExportContracts(path, exportFixture()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetContracts, SheetSectors, SheetOrganizations}, f.GetSheetList())

	rows, err := f.GetRows(SheetContracts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ExportHeader, rows[0])
	assert.Equal(t, "FHI 360", rows[1][2])

	raw := excelize.Options{RawCellValue: true}
	estimated, err := f.GetCellValue(SheetContracts, "E2", raw)
	require.NoError(t, err)
	assert.Equal(t, "100", estimated)

	loss, err := f.GetCellValue(SheetContracts, "L2", raw)
	require.NoError(t, err)
	assert.Equal(t, "-60", loss)

	// NULL - пустая ячейка
	empty, err := f.GetCellValue(SheetContracts, "E3")
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	summaries, err := f.GetRows(SheetOrganizations)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, SummaryHeader, summaries[0])
	assert.Equal(t, "Chemonics", summaries[2][0])
}

func TestExportContracts_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "awards.csv")
	require.NoError(t, ExportContracts(path, exportFixture()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "720FDA19C00005", rows[2][0])
}
