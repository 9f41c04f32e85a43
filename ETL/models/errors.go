package models

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch - в исходной таблице нет ожидаемой колонки или лишние безымянные колонки
	ErrSchemaMismatch = errors.New("схема исходной таблицы не совпадает с ожидаемой")

	// ErrPatchTarget - цель исправления не найдена или найдена неоднозначно
	ErrPatchTarget = errors.New("цель исправления не найдена однозначно")

	// ErrDuplicateAwardID - после исправлений остались повторяющиеся award_id
	ErrDuplicateAwardID = errors.New("повторяющийся award_id после исправлений")

	// ErrInvalidRollup - некорректная конфигурация сводки
	ErrInvalidRollup = errors.New("некорректная конфигурация сводки")
)

// MissingColumnError - в исходной таблице отсутствует обязательная колонка
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("источник %s: отсутствует колонка %q", e.Source, e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrSchemaMismatch
}

// SchemaError - прочие несоответствия схемы (например, число безымянных колонок)
type SchemaError struct {
	Source string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("источник %s: %s", e.Source, e.Detail)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// CorrectionError - исправление не удалось применить
type CorrectionError struct {
	Index      int
	Correction string
	Matches    int
	Err        error
}

func (e *CorrectionError) Error() string {
	if e.Err != nil && e.Err != ErrPatchTarget {
		return fmt.Sprintf("исправление #%d (%s): %v", e.Index+1, e.Correction, e.Err)
	}
	return fmt.Sprintf("исправление #%d (%s): ожидалось ровно одно совпадение, найдено %d", e.Index+1, e.Correction, e.Matches)
}

func (e *CorrectionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrPatchTarget
}
