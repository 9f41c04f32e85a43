package models

import (
	"database/sql"
	"fmt"
)

// RecordType - признак исходной совокупности записи
type RecordType string

const (
	RecordTypeFunded RecordType = "funded"
	RecordTypeDefund RecordType = "defund"
)

// Valid проверяет, что тип записи - одно из двух допустимых значений
func (t RecordType) Valid() bool {
	return t == RecordTypeFunded || t == RecordTypeDefund
}

// Field - имя поля канонической схемы
type Field string

const (
	FieldAwardID         Field = "award_id"
	FieldContractID      Field = "contract_id"
	FieldVendor          Field = "vendor"
	FieldContract        Field = "contract"
	FieldEstimatedCost   Field = "estimated_cost"
	FieldObligatedAmount Field = "obligated_amount"
	FieldStartDate       Field = "start_date"
	FieldEndDate         Field = "end_date"
	FieldIssuingOffice   Field = "issuing_office"
	FieldType            Field = "type"
)

// FieldKind определяет, как разбирается значение поля
type FieldKind int

const (
	KindText FieldKind = iota
	KindCurrency
	KindDate
)

// CanonicalFields - поля канонической схемы в порядке вывода
var CanonicalFields = []Field{
	FieldAwardID,
	FieldContractID,
	FieldVendor,
	FieldContract,
	FieldEstimatedCost,
	FieldObligatedAmount,
	FieldStartDate,
	FieldEndDate,
	FieldIssuingOffice,
	FieldType,
}

// TextFields - текстовые поля, к которым применяется нормализация
var TextFields = []Field{
	FieldAwardID,
	FieldContractID,
	FieldVendor,
	FieldContract,
	FieldIssuingOffice,
	FieldType,
}

// Kind возвращает тип значения поля
func (f Field) Kind() FieldKind {
	switch f {
	case FieldEstimatedCost, FieldObligatedAmount:
		return KindCurrency
	case FieldStartDate, FieldEndDate:
		return KindDate
	default:
		return KindText
	}
}

// Known проверяет, что поле входит в каноническую схему
func (f Field) Known() bool {
	for _, known := range CanonicalFields {
		if f == known {
			return true
		}
	}
	return false
}

// ContractRecord - каноническая запись о контракте после стандартизации
type ContractRecord struct {
	AwardID         string
	ContractID      string
	Vendor          string
	Contract        string
	EstimatedCost   sql.NullFloat64
	ObligatedAmount sql.NullFloat64
	StartDate       sql.NullTime
	EndDate         sql.NullTime
	IssuingOffice   string
	Type            RecordType
}

// Value - стоимость записи: оценка для funded, обязательства для defund
func (r ContractRecord) Value() sql.NullFloat64 {
	if r.Type == RecordTypeFunded {
		return r.EstimatedCost
	}
	return r.ObligatedAmount
}

// Loss - потери: 0 для funded, обязательства минус оценка для defund.
// Знак сохраняется как есть.
func (r ContractRecord) Loss() sql.NullFloat64 {
	if r.Type == RecordTypeFunded {
		return sql.NullFloat64{Float64: 0, Valid: true}
	}
	if !r.ObligatedAmount.Valid || !r.EstimatedCost.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: r.ObligatedAmount.Float64 - r.EstimatedCost.Float64, Valid: true}
}

// Text возвращает значение текстового поля
func (r ContractRecord) Text(field Field) (string, error) {
	switch field {
	case FieldAwardID:
		return r.AwardID, nil
	case FieldContractID:
		return r.ContractID, nil
	case FieldVendor:
		return r.Vendor, nil
	case FieldContract:
		return r.Contract, nil
	case FieldIssuingOffice:
		return r.IssuingOffice, nil
	case FieldType:
		return string(r.Type), nil
	default:
		return "", fmt.Errorf("поле %q не является текстовым", field)
	}
}

// SetText записывает значение текстового поля
func (r *ContractRecord) SetText(field Field, value string) error {
	switch field {
	case FieldAwardID:
		r.AwardID = value
	case FieldContractID:
		r.ContractID = value
	case FieldVendor:
		r.Vendor = value
	case FieldContract:
		r.Contract = value
	case FieldIssuingOffice:
		r.IssuingOffice = value
	case FieldType:
		r.Type = RecordType(value)
	default:
		return fmt.Errorf("поле %q не является текстовым", field)
	}
	return nil
}

// SetCurrency записывает денежное поле
func (r *ContractRecord) SetCurrency(field Field, value sql.NullFloat64) error {
	switch field {
	case FieldEstimatedCost:
		r.EstimatedCost = value
	case FieldObligatedAmount:
		r.ObligatedAmount = value
	default:
		return fmt.Errorf("поле %q не является денежным", field)
	}
	return nil
}

// SetDate записывает поле даты
func (r *ContractRecord) SetDate(field Field, value sql.NullTime) error {
	switch field {
	case FieldStartDate:
		r.StartDate = value
	case FieldEndDate:
		r.EndDate = value
	default:
		return fmt.Errorf("поле %q не является датой", field)
	}
	return nil
}

// CloneRecords возвращает независимую копию таблицы
func CloneRecords(records []ContractRecord) []ContractRecord {
	out := make([]ContractRecord, len(records))
	copy(out, records)
	return out
}
