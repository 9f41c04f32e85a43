package transform

import (
	"errors"
	"testing"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defund(id string) models.ContractRecord {
	return models.ContractRecord{
		AwardID:         id,
		ContractID:      id,
		Vendor:          "Vendor " + id,
		Contract:        "Contract " + id,
		EstimatedCost:   utils.ParseCurrency("$100.00"),
		ObligatedAmount: utils.ParseCurrency("$40.00"),
		StartDate:       utils.ParseDate("1/1/2020"),
		Type:            models.RecordTypeDefund,
	}
}

func newEngine() *PatchEngine {
	return NewPatchEngine(utils.NewNopLogger())
}

func TestPatchEngine_SplitRowCardinalityAndPosition(t *testing.T) {
	records := []models.ContractRecord{defund("A1"), defund("B1\nB2"), defund("C1")}
	split := SplitRow{
		Name:      "B1/B2",
		Signature: Signature{AwardIDLength: 5, AwardIDPrefix: "B1"},
		Replacements: [2]models.ContractRecord{
			{AwardID: "B1", Vendor: "First"},
			{AwardID: "B2", Vendor: "Second", ContractID: "K-2"},
		},
	}

	patched, report, err := newEngine().Apply(records, []Correction{split})
	require.NoError(t, err)

	require.Len(t, patched, len(records)+1)
	assert.Equal(t, []string{"A1", "B1", "B2", "C1"}, awardIDs(patched))
	assert.Equal(t, PatchReport{RowsBefore: 3, RowsAfter: 4, Splits: 1, Applied: []string{split.Describe()}}, report)

	// тип берется у заменяемой строки, contract_id по умолчанию равен award_id
	assert.Equal(t, models.RecordTypeDefund, patched[1].Type)
	assert.Equal(t, "B1", patched[1].ContractID)
	assert.Equal(t, "K-2", patched[2].ContractID)
}

func TestPatchEngine_OverwritePrecision(t *testing.T) {
	records := []models.ContractRecord{defund("A1"), defund("A2"), defund("A3")}
	overwrite := Overwrite{
		AwardID: "A2",
		Set: []FieldValue{
			{Field: models.FieldVendor, Value: "John Snow, Inc."},
			{Field: models.FieldEstimatedCost, Value: "$2,450,000.00"},
			{Field: models.FieldEndDate, Value: "12/31/2025"},
		},
	}

	patched, report, err := newEngine().Apply(records, []Correction{overwrite})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Overwrites)

	want := models.CloneRecords(records)
	want[1].Vendor = "John Snow, Inc."
	want[1].EstimatedCost = utils.ParseCurrency("2450000")
	want[1].EndDate = utils.ParseDate("12/31/2025")

	if diff := cmp.Diff(want, patched); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchEngine_DoesNotMutateInput(t *testing.T) {
	records := []models.ContractRecord{defund("A1"), defund("B1 B2")}
	original := models.CloneRecords(records)

	corrections := []Correction{
		Overwrite{AwardID: "A1", Set: []FieldValue{{Field: models.FieldVendor, Value: "Changed"}}},
		SplitRow{
			Name:         "B1/B2",
			Signature:    Signature{AwardIDLength: 5, AwardIDPrefix: "B1"},
			Replacements: [2]models.ContractRecord{{AwardID: "B1"}, {AwardID: "B2"}},
		},
	}

	_, _, err := newEngine().Apply(records, corrections)
	require.NoError(t, err)

	if diff := cmp.Diff(original, records); diff != "" {
		t.Errorf("input table was modified (-want +got):\n%s", diff)
	}
}

func TestPatchEngine_TargetNotFound(t *testing.T) {
	records := []models.ContractRecord{defund("A1")}

	_, _, err := newEngine().Apply(records, []Correction{
		Overwrite{AwardID: "Z9", Set: []FieldValue{{Field: models.FieldVendor, Value: "x"}}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPatchTarget)

	var correctionErr *models.CorrectionError
	require.True(t, errors.As(err, &correctionErr))
	assert.Equal(t, 0, correctionErr.Index)
	assert.Equal(t, 0, correctionErr.Matches)
}

func TestPatchEngine_AmbiguousTarget(t *testing.T) {
	records := []models.ContractRecord{defund("A1\nA2"), defund("A1 A3")}
	split := SplitRow{
		Name:         "A",
		Signature:    Signature{AwardIDLength: 5, AwardIDPrefix: "A1"},
		Replacements: [2]models.ContractRecord{{AwardID: "A1"}, {AwardID: "A2"}},
	}

	_, _, err := newEngine().Apply(records, []Correction{split})

	var correctionErr *models.CorrectionError
	require.True(t, errors.As(err, &correctionErr))
	assert.Equal(t, 2, correctionErr.Matches)
	assert.ErrorIs(t, err, models.ErrPatchTarget)
}

func TestPatchEngine_OverwriteMatchesNormalizedID(t *testing.T) {
	records := []models.ContractRecord{defund(" A1\n"), defund("A2")}

	patched, _, err := newEngine().Apply(records, []Correction{
		Overwrite{AwardID: "A1", Set: []FieldValue{{Field: models.FieldIssuingOffice, Value: "USAID/Kenya"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "USAID/Kenya", patched[0].IssuingOffice)
}

func TestPatchEngine_SignatureCountsRunes(t *testing.T) {
	sig := Signature{AwardIDLength: 4, AwardIDPrefix: "Ü"}
	assert.True(t, sig.Matches("Ü123"))
	assert.False(t, sig.Matches("Ü1234"))
	assert.False(t, sig.Matches("X123"))
}

func TestPatchEngine_InvalidCorrections(t *testing.T) {
	records := []models.ContractRecord{defund("A1")}

	tests := []struct {
		name       string
		correction Correction
	}{
		{"type is not overwritable", Overwrite{AwardID: "A1", Set: []FieldValue{{Field: models.FieldType, Value: "funded"}}}},
		{"unknown field", Overwrite{AwardID: "A1", Set: []FieldValue{{Field: "title", Value: "x"}}}},
		{"empty set", Overwrite{AwardID: "A1"}},
		{"unparseable currency", Overwrite{AwardID: "A1", Set: []FieldValue{{Field: models.FieldObligatedAmount, Value: "TBD"}}}},
		{"unparseable date", Overwrite{AwardID: "A1", Set: []FieldValue{{Field: models.FieldStartDate, Value: "2020-01-01"}}}},
		{"zero signature", SplitRow{Name: "x", Replacements: [2]models.ContractRecord{{AwardID: "a"}, {AwardID: "b"}}}},
		{"replacement without id", SplitRow{Name: "x", Signature: Signature{AwardIDLength: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newEngine().Apply(records, []Correction{tt.correction})
			var correctionErr *models.CorrectionError
			assert.True(t, errors.As(err, &correctionErr), "got %v", err)
		})
	}
}

func TestPatchEngine_DuplicateAwardIDAfterSplit(t *testing.T) {
	records := []models.ContractRecord{defund("A1"), defund("B1 A1")}
	split := SplitRow{
		Name:         "B1/A1",
		Signature:    Signature{AwardIDLength: 5, AwardIDPrefix: "B1"},
		Replacements: [2]models.ContractRecord{{AwardID: "B1"}, {AwardID: "A1"}},
	}

	_, _, err := newEngine().Apply(records, []Correction{split})
	assert.ErrorIs(t, err, models.ErrDuplicateAwardID)
}

func TestPatchEngine_DeclaredOrderMatters(t *testing.T) {
	records := []models.ContractRecord{defund("B1 B2")}
	split := SplitRow{
		Name:         "B1/B2",
		Signature:    Signature{AwardIDLength: 5, AwardIDPrefix: "B1"},
		Replacements: [2]models.ContractRecord{{AwardID: "B1"}, {AwardID: "B2"}},
	}
	overwrite := Overwrite{AwardID: "B2", Set: []FieldValue{{Field: models.FieldVendor, Value: "Fixed"}}}

	patched, _, err := newEngine().Apply(records, []Correction{split, overwrite})
	require.NoError(t, err)
	assert.Equal(t, "Fixed", patched[1].Vendor)

	// в обратном порядке цели замены еще нет
	_, _, err = newEngine().Apply(records, []Correction{overwrite, split})
	assert.ErrorIs(t, err, models.ErrPatchTarget)
}

func TestPatchEngine_AppliedTwiceFails(t *testing.T) {
	records := []models.ContractRecord{defund("B1 B2")}
	split := SplitRow{
		Name:         "B1/B2",
		Signature:    Signature{AwardIDLength: 5, AwardIDPrefix: "B1"},
		Replacements: [2]models.ContractRecord{{AwardID: "B1"}, {AwardID: "B2"}},
	}

	patched, _, err := newEngine().Apply(records, []Correction{split})
	require.NoError(t, err)

	_, _, err = newEngine().Apply(patched, []Correction{split})
	assert.ErrorIs(t, err, models.ErrPatchTarget)
}

func TestPatchEngine_NoCorrections(t *testing.T) {
	records := []models.ContractRecord{defund("A1"), defund("A2")}

	patched, report, err := newEngine().Apply(records, nil)
	require.NoError(t, err)
	assert.Equal(t, records, patched)
	assert.Equal(t, 2, report.RowsAfter)
}

func awardIDs(records []models.ContractRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.AwardID
	}
	return ids
}
