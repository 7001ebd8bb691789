package report

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the summary as a workbook with a Summary and an Items sheet.
func WriteXLSX(w io.Writer, s Summary) error {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	addRow(summary, "Month", s.Month)
	addRow(summary, "Orders", s.OrderCount)
	addRow(summary, "Total Sales", s.TotalSales.StringFixed(2))

	items, err := file.AddSheet("Items")
	if err != nil {
		return fmt.Errorf("failed to create items sheet: %w", err)
	}
	addRow(items, "Item", "Qty Sold")
	for _, it := range s.Items {
		addRow(items, it.Name, it.Qty)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...interface{}) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetValue(v)
	}
}
