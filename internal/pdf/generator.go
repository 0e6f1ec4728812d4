package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/claritybiz/irp-platform/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Arial"}
}

// Generate renders the printable work order issued once a bid is accepted
// and paid for.
func (g *Generator) Generate(doc model.WorkOrderDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "WORK ORDER", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Work Order No. %s dated %s", doc.Order.WONumber, formatDate(doc.Order.IssuedAt)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Service Request %s / Bid %s", doc.Request.SRNNumber, doc.Bid.BidNumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Engagement", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.MultiCell(0, 6, doc.Request.Title, "", "L", false)
	if doc.Request.ScopeOfWork != "" {
		pdf.MultiCell(0, 6, "Scope: "+doc.Request.ScopeOfWork, "", "L", false)
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Category: %s", strings.Join(doc.Request.ServiceCategory, ", ")), "", 1, "L", false, 0, "")
	if !doc.Bid.DeliveryDate.IsZero() {
		pdf.CellFormat(0, 6, fmt.Sprintf("Delivery by: %s", formatDate(doc.Bid.DeliveryDate)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Fees", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Component", "Amount (INR)"}
	colWidths := []float64{120, 60}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	fin := doc.Bid.Financials
	rows := [][]string{
		{"Professional fee", formatAmount(fin.ProfessionalFee)},
		{"Platform fee", formatAmount(fin.PlatformFee)},
		{"GST", formatAmount(fin.GST)},
		{"Reimbursements", formatAmount(fin.Reimbursements)},
		{"Total", formatAmount(fin.TotalBidAmount)},
	}
	for _, row := range rows {
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Payment structure: %s", model.TitleCaseStatus(string(fin.PaymentStructure))), "", 1, "L", false, 0, "")
	if len(fin.Milestones) > 0 {
		for _, m := range fin.Milestones {
			pdf.CellFormat(0, 6, fmt.Sprintf("  - %s: %s", m.Label, formatAmount(m.Amount)), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(8)
	pdf.CellFormat(0, 6, "This work order is issued electronically and is valid without signature.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, font string, cells []string, widths []float64, header bool) {
	if header {
		pdf.SetFont(font, "B", 10)
	} else {
		pdf.SetFont(font, "", 10)
	}
	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
