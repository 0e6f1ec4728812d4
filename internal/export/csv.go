// Package export renders payment history for download. The CSV encoder
// quotes embedded delimiters and newlines, so exported statements parse
// back losslessly.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/claritybiz/irp-platform/internal/model"
)

var csvHeader = []string{
	"receipt_number", "paid_at", "purpose", "amount", "gst", "method", "status",
}

type CSVEncoder struct{}

func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{}
}

func (e *CSVEncoder) Encode(records []model.PaymentRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.ReceiptNumber,
			r.PaidAt.UTC().Format("2006-01-02 15:04:05"),
			r.Purpose,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			strconv.FormatFloat(r.GST, 'f', 2, 64),
			string(r.Method),
			string(r.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
