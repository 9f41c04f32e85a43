package transform

import (
	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// DefundedCorrections - ручной список исправлений текущей выгрузки defunded.
// Сигнатуры привязаны к конкретному файлу: после повторной выгрузки их нужно
// проверить заново.
func DefundedCorrections() []Correction {
	return []Correction{
		// Две строки PDF склеены в одну ячейку через перевод строки
		SplitRow{
			Name:      "72038819C00003/72061121C00001",
			Signature: Signature{AwardIDLength: 29, AwardIDPrefix: "72038819"},
			Replacements: [2]models.ContractRecord{
				defundRecord("72038819C00003", "Chemonics International Inc.", "Malaria prevention",
					"$1,200,000.00", "$400,000.00", "9/1/2019", "8/31/2024", "USAID/Nigeria"),
				defundRecord("72061121C00001", "Palladium International", "Basic education",
					"$850,000.00", "$200,000.00", "7/1/2021", "6/30/2026", "USAID/Nigeria"),
			},
		},
		// Склейка через пробел
		SplitRow{
			Name:      "7200AA18C00087/7200AA20C00054",
			Signature: Signature{AwardIDLength: 29, AwardIDPrefix: "7200AA18"},
			Replacements: [2]models.ContractRecord{
				defundRecord("7200AA18C00087", "Tetra Tech ARD", "Land governance",
					"$4,000,000.00", "$1,500,000.00", "5/1/2018", "4/30/2023", "USAID/Washington"),
				defundRecord("7200AA20C00054", "DAI Global LLC", "Water sanitation",
					"$2,000,000.00", "$500,000.00", "4/1/2020", "3/31/2025", "USAID/Washington"),
			},
		},
		// Потерян получатель, оценка сдвинута на два разряда
		Overwrite{
			AwardID: "72066319C00004",
			Set: []FieldValue{
				{Field: models.FieldVendor, Value: "John Snow, Inc."},
				{Field: models.FieldEstimatedCost, Value: "$2,450,000.00"},
			},
		},
		// Вместо суммы обязательств в таблице "TBD"
		Overwrite{
			AwardID: "720FDA22C00012",
			Set: []FieldValue{
				{Field: models.FieldObligatedAmount, Value: "$0.00"},
			},
		},
	}
}

func defundRecord(awardID, vendor, contract, estimated, obligated, start, end, office string) models.ContractRecord {
	return models.ContractRecord{
		AwardID:         awardID,
		ContractID:      awardID,
		Vendor:          vendor,
		Contract:        contract,
		EstimatedCost:   utils.ParseCurrency(estimated),
		ObligatedAmount: utils.ParseCurrency(obligated),
		StartDate:       utils.ParseDate(start),
		EndDate:         utils.ParseDate(end),
		IssuingOffice:   office,
		Type:            models.RecordTypeDefund,
	}
}
