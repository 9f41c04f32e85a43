package utils

import (
	"database/sql"
	"strings"
	"time"
)

// DateLayout - формат дат в исходных выгрузках: месяц/день/год
const DateLayout = "1/2/2006"

// ParseDate разбирает дату в формате месяц/день/год.
// Пустое или некорректное значение дает NULL.
func ParseDate(text string) sql.NullTime {
	text = strings.TrimSpace(text)
	if text == "" {
		return sql.NullTime{}
	}

	parsed, err := time.Parse(DateLayout, text)
	if err != nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: parsed, Valid: true}
}

// FormatDate выводит дату в том же формате, NULL превращается в пустую строку
func FormatDate(value sql.NullTime) string {
	if !value.Valid {
		return ""
	}
	return value.Time.Format("01/02/2006")
}
