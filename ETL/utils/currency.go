package utils

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// currencyReplacer убирает знак доллара и разделители тысяч
var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// ParseCurrency превращает денежный текст вида "$12,345.67" в число.
// Пустая или нераспознанная строка дает NULL, а не ошибку.
func ParseCurrency(text string) sql.NullFloat64 {
	cleaned := strings.TrimSpace(currencyReplacer.Replace(text))
	if cleaned == "" {
		return sql.NullFloat64{}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: value, Valid: true}
}

// NormalizeCurrency принимает как текст, так и уже числовое значение.
// Числа возвращаются без изменений, строки проходят через ParseCurrency.
func NormalizeCurrency(v any) sql.NullFloat64 {
	switch value := v.(type) {
	case nil:
		return sql.NullFloat64{}
	case string:
		return ParseCurrency(value)
	case sql.NullFloat64:
		return value
	case *float64:
		if value == nil {
			return sql.NullFloat64{}
		}
		return validFloat(*value)
	case float64:
		return validFloat(value)
	case float32:
		return validFloat(float64(value))
	case int:
		return validFloat(float64(value))
	case int32:
		return validFloat(float64(value))
	case int64:
		return validFloat(float64(value))
	default:
		return sql.NullFloat64{}
	}
}

func validFloat(value float64) sql.NullFloat64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: value, Valid: true}
}
