package transform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/utils"
)

// Correction - декларативное исправление одной поврежденной строки.
// Набор вариантов закрыт: Overwrite и SplitRow.
type Correction interface {
	// Describe - краткое описание для логов и ошибок
	Describe() string

	validate() error
	locate(records []models.ContractRecord) []int
	apply(records []models.ContractRecord, index int) ([]models.ContractRecord, error)
}

// FieldValue - новое значение поля в исходном текстовом виде.
// Суммы и даты разбираются теми же правилами, что и при чтении выгрузок.
type FieldValue struct {
	Field models.Field
	Value string
}

// Overwrite заменяет значения полей у записи с заданным award_id
type Overwrite struct {
	AwardID string
	Set     []FieldValue
}

func (o Overwrite) Describe() string {
	fields := make([]string, len(o.Set))
	for i, fv := range o.Set {
		fields[i] = string(fv.Field)
	}
	return fmt.Sprintf("overwrite %s [%s]", o.AwardID, strings.Join(fields, ", "))
}

func (o Overwrite) validate() error {
	if NormalizeText(o.AwardID) == "" {
		return fmt.Errorf("не указан award_id")
	}
	if len(o.Set) == 0 {
		return fmt.Errorf("нет полей для замены")
	}
	for _, fv := range o.Set {
		if !fv.Field.Known() {
			return fmt.Errorf("неизвестное поле %q", fv.Field)
		}
		if fv.Field == models.FieldType {
			return fmt.Errorf("поле type не перезаписывается")
		}
	}
	return nil
}

// locate сравнивает award_id после нормализации текста
func (o Overwrite) locate(records []models.ContractRecord) []int {
	target := NormalizeText(o.AwardID)
	var matches []int
	for i, r := range records {
		if NormalizeText(r.AwardID) == target {
			matches = append(matches, i)
		}
	}
	return matches
}

func (o Overwrite) apply(records []models.ContractRecord, index int) ([]models.ContractRecord, error) {
	record := records[index]
	for _, fv := range o.Set {
		if err := setFieldValue(&record, fv); err != nil {
			return nil, err
		}
	}
	records[index] = record
	return records, nil
}

func setFieldValue(record *models.ContractRecord, fv FieldValue) error {
	switch fv.Field.Kind() {
	case models.KindCurrency:
		value := utils.ParseCurrency(fv.Value)
		if !value.Valid && strings.TrimSpace(fv.Value) != "" {
			return fmt.Errorf("поле %s: сумма %q не распознана", fv.Field, fv.Value)
		}
		return record.SetCurrency(fv.Field, value)
	case models.KindDate:
		value := utils.ParseDate(fv.Value)
		if !value.Valid && strings.TrimSpace(fv.Value) != "" {
			return fmt.Errorf("поле %s: дата %q не распознана", fv.Field, fv.Value)
		}
		return record.SetDate(fv.Field, value)
	default:
		return record.SetText(fv.Field, fv.Value)
	}
}

// Signature описывает поврежденную строку по ее award_id:
// точная длина в символах и обязательный префикс.
type Signature struct {
	AwardIDLength int
	AwardIDPrefix string
}

// Matches проверяет исходный (ненормализованный) award_id
func (s Signature) Matches(awardID string) bool {
	return utf8.RuneCountInString(awardID) == s.AwardIDLength && strings.HasPrefix(awardID, s.AwardIDPrefix)
}

func (s Signature) String() string {
	return fmt.Sprintf("len=%d prefix=%q", s.AwardIDLength, s.AwardIDPrefix)
}

// SplitRow заменяет одну склеенную строку двумя записями на том же месте
type SplitRow struct {
	Name         string
	Signature    Signature
	Replacements [2]models.ContractRecord
}

func (s SplitRow) Describe() string {
	return fmt.Sprintf("split %s (%s)", s.Name, s.Signature)
}

func (s SplitRow) validate() error {
	if s.Signature.AwardIDLength <= 0 {
		return fmt.Errorf("длина award_id в сигнатуре должна быть положительной")
	}
	for i, r := range s.Replacements {
		if NormalizeText(r.AwardID) == "" {
			return fmt.Errorf("замена #%d без award_id", i+1)
		}
	}
	return nil
}

func (s SplitRow) locate(records []models.ContractRecord) []int {
	var matches []int
	for i, r := range records {
		if s.Signature.Matches(r.AwardID) {
			matches = append(matches, i)
		}
	}
	return matches
}

// apply ставит замены на место найденной строки. Тип берется у заменяемой
// строки, пустой contract_id заполняется значением award_id.
func (s SplitRow) apply(records []models.ContractRecord, index int) ([]models.ContractRecord, error) {
	replaced := records[index]

	out := make([]models.ContractRecord, 0, len(records)+1)
	out = append(out, records[:index]...)
	for _, r := range s.Replacements {
		r.Type = replaced.Type
		if r.ContractID == "" {
			r.ContractID = r.AwardID
		}
		out = append(out, r)
	}
	out = append(out, records[index+1:]...)
	return out, nil
}
