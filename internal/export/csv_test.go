package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritybiz/irp-platform/internal/model"
)

func TestCSVRoundTrip(t *testing.T) {
	paidAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	records := []model.PaymentRecord{
		{
			ID:            uuid.New(),
			ReceiptNumber: "RCPT-2026-0001",
			PayerID:       uuid.New(),
			Purpose:       "Publication, Form A, two newspapers",
			Amount:        4500,
			GST:           810,
			Method:        model.PaymentMethodNetBanking,
			Status:        model.PaymentStatusSuccess,
			PaidAt:        paidAt,
		},
		{
			ID:            uuid.New(),
			ReceiptNumber: "RCPT-2026-0002",
			PayerID:       uuid.New(),
			Purpose:       "Line one\nline two, with \"quotes\"",
			Amount:        12000.50,
			GST:           2160.09,
			Method:        model.PaymentMethodUPI,
			Status:        model.PaymentStatusPending,
			PaidAt:        paidAt,
		},
	}

	content, err := NewCSVEncoder().Encode(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1, "header plus one row per record")

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "RCPT-2026-0001", rows[1][0])
	assert.Equal(t, "Publication, Form A, two newspapers", rows[1][2])
	assert.Equal(t, "4500.00", rows[1][3])

	// embedded newline, comma, and quotes survive
	assert.Equal(t, "Line one\nline two, with \"quotes\"", rows[2][2])
	assert.Equal(t, "12000.50", rows[2][3])
	assert.Equal(t, "2160.09", rows[2][4])
}

func TestCSVEmptyHistory(t *testing.T) {
	content, err := NewCSVEncoder().Encode(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
