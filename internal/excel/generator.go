package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/claritybiz/irp-platform/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Encode writes the payment history as a single-sheet workbook with a
// totals row beneath the table.
func (g *Generator) Encode(records []model.PaymentRecord) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Payment History"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Receipt", "Paid At", "Purpose", "Amount", "GST", "Method", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	var totalAmount, totalGST float64
	for i, r := range records {
		row := i + 2
		set(fmt.Sprintf("A%d", row), r.ReceiptNumber)
		set(fmt.Sprintf("B%d", row), r.PaidAt.UTC().Format("2006-01-02 15:04"))
		set(fmt.Sprintf("C%d", row), r.Purpose)
		set(fmt.Sprintf("D%d", row), r.Amount)
		set(fmt.Sprintf("E%d", row), r.GST)
		set(fmt.Sprintf("F%d", row), model.TitleCaseStatus(string(r.Method)))
		set(fmt.Sprintf("G%d", row), model.TitleCaseStatus(string(r.Status)))
		totalAmount += r.Amount
		totalGST += r.GST
	}

	totalRow := len(records) + 3
	set(fmt.Sprintf("C%d", totalRow), "Total")
	set(fmt.Sprintf("D%d", totalRow), totalAmount)
	set(fmt.Sprintf("E%d", totalRow), totalGST)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
