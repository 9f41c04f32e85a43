package extractors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// RawTable - исходная таблица до сопоставления колонок
type RawTable struct {
	Source  string
	Headers []string
	Rows    [][]string

	// Сколько строк отброшено при чтении
	SkippedBlankRows  int
	SkippedHeaderRows int
}

// pandas называет безымянные колонки "Unnamed: N"
var unnamedHeaderPattern = regexp.MustCompile(`^Unnamed: \d+$`)

// IsUnnamedHeader сообщает, что колонка не имеет имени
func IsUnnamedHeader(header string) bool {
	return header == "" || unnamedHeaderPattern.MatchString(header)
}

// ReadRawTable читает CSV-файл. Файл закрывается сразу после разбора.
func ReadRawTable(source, path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("источник %s: ошибка открытия файла: %w", source, err)
	}
	defer file.Close()

	return ParseRawTable(source, file)
}

// ParseRawTable разбирает CSV и сглаживает артефакты выгрузки:
// BOM, переводы строк \r в заголовках, строки разной длины,
// пустые строки и заголовок, повторенный на каждой странице PDF.
func ParseRawTable(source string, r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.SchemaError{Source: source, Detail: "файл пуст, нет строки заголовка"}
	}
	if err != nil {
		return nil, fmt.Errorf("источник %s: ошибка чтения заголовка: %w", source, err)
	}

	table := &RawTable{Source: source, Headers: make([]string, len(header))}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		table.Headers[i] = cleanHeader(h)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("источник %s: ошибка чтения строки: %w", source, err)
		}

		row := fitRow(record, len(table.Headers))
		if isBlankRow(row) {
			table.SkippedBlankRows++
			continue
		}
		if isRepeatedHeader(row, table.Headers) {
			table.SkippedHeaderRows++
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// cleanHeader приводит переводы строк к \n и убирает пробелы по краям.
// Переводы строк внутри имени остаются частью имени колонки.
func cleanHeader(h string) string {
	h = strings.ReplaceAll(h, "\r\n", "\n")
	h = strings.ReplaceAll(h, "\r", "\n")
	return strings.TrimSpace(h)
}

// fitRow дополняет короткую строку пустыми ячейками и обрезает длинную
func fitRow(record []string, width int) []string {
	row := make([]string, width)
	copy(row, record)
	return row
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isRepeatedHeader(row, headers []string) bool {
	named := 0
	for i, h := range headers {
		if IsUnnamedHeader(h) {
			continue
		}
		if cleanHeader(row[i]) != h {
			return false
		}
		named++
	}
	return named > 0
}
