// Package report выводит итоги запуска в терминал (режим --dry-run)
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = textStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var summaryHeaders = []string{"Категория", "Value", "Loss", "Contract", "Записей"}

// RenderSummaries рисует сводку таблицей. Порядок строк - порядок категорий.
func RenderSummaries(title string, summaries []models.CategorySummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Category,
			FormatMoney(s.TotalValue),
			FormatMoney(s.TotalLoss),
			FormatMoney(s.TotalContract),
			strconv.Itoa(s.MatchedRecords),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return textStyle
			default:
				return numberStyle
			}
		})

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), t.String())
}

// RenderRun рисует счетчики запуска и обе сводки
func RenderRun(runID string, data *models.TransformedData) string {
	m := data.Metadata
	counts := fmt.Sprintf(
		"funded: %d, defund до исправлений: %d, после: %d, всего: %d\nзамен: %d, разделений: %d",
		m.FundedRecords, m.DefundedRawRecords, m.DefundedRecords, m.MergedRecords,
		m.OverwritesApplied, m.SplitsApplied,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Запуск "+runID),
		counts,
		RenderSummaries("Сводка по секторам", data.Sectors),
		RenderSummaries("Сводка по организациям", data.Organizations),
	)
}

// WriteRun печатает отчет о запуске
func WriteRun(w io.Writer, runID string, data *models.TransformedData) error {
	_, err := fmt.Fprintln(w, RenderRun(runID, data))
	return err
}

// FormatMoney - сумма с двумя знаками и разделителем тысяч: -1,350,000.00
func FormatMoney(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
