// Package export renders report data to downloadable documents.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"billfold/internal/core"
)

// ReportXLSX renders the merged income report as an Excel workbook and
// returns the raw file bytes.
func ReportXLSX(report *core.Report) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "billfold",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	_ = xlsx.SetSheetName(sheet, "Income Report")
	sheet = "Income Report"

	_ = xlsx.SetColWidth(sheet, "A", "A", 20)
	_ = xlsx.SetColWidth(sheet, "B", "B", 25)
	_ = xlsx.SetColWidth(sheet, "C", "C", 10)
	_ = xlsx.SetColWidth(sheet, "D", "D", 40)
	_ = xlsx.SetColWidth(sheet, "E", "E", 14)

	bold, err := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	row := 1
	_ = xlsx.SetCellValue(sheet, cell('A', row), fmt.Sprintf("Income report %s — %s",
		report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02")))
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('E', row), bold)
	row += 2

	for i, header := range []string{"Date", "Client", "Type", "Description", "Amount"} {
		_ = xlsx.SetCellValue(sheet, cell(rune('A'+i), row), header)
	}
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('E', row), bold)
	row++

	for _, entry := range report.Entries {
		_ = xlsx.SetCellValue(sheet, cell('A', row), entry.Date.Format("2006-01-02 15:04"))
		_ = xlsx.SetCellValue(sheet, cell('B', row), entry.ClientName)
		_ = xlsx.SetCellValue(sheet, cell('C', row), string(entry.Kind))
		_ = xlsx.SetCellValue(sheet, cell('D', row), entry.Description)
		_ = xlsx.SetCellValue(sheet, cell('E', row), entry.Amount.InexactFloat64())
		row++
	}

	row++
	for _, total := range []struct {
		label string
		value string
	}{
		{"Total billed", report.TotalBilled.StringFixed(2)},
		{"Total income", report.TotalIncome.StringFixed(2)},
		{"Net", report.Net.StringFixed(2)},
	} {
		_ = xlsx.SetCellValue(sheet, cell('D', row), total.label)
		_ = xlsx.SetCellValue(sheet, cell('E', row), total.value)
		_ = xlsx.SetCellStyle(sheet, cell('D', row), cell('E', row), bold)
		row++
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
