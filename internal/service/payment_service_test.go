package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritybiz/irp-platform/internal/export"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

func TestFeeBreakdownSharesSumToHundred(t *testing.T) {
	breakdown := FeeBreakdown([]model.FeeComponent{
		{Label: "Professional fee", Amount: 90000},
		{Label: "Platform fee", Amount: 4500},
		{Label: "GST", Amount: 17010},
		{Label: "Reimbursements", Amount: 2500},
	})

	require.Len(t, breakdown, 4)
	var sum float64
	for _, b := range breakdown {
		sum += b.Share
	}
	assert.InDelta(t, 100, sum, 0.05)
	assert.InDelta(t, 78.94, breakdown[0].Share, 0.01)
}

func TestFeeBreakdownZeroTotal(t *testing.T) {
	breakdown := FeeBreakdown([]model.FeeComponent{
		{Label: "Professional fee", Amount: 0},
		{Label: "GST", Amount: 0},
	})

	require.Len(t, breakdown, 2)
	for _, b := range breakdown {
		assert.Zero(t, b.Share)
	}
}

func TestExportCSVCoversAllPages(t *testing.T) {
	ctx := context.Background()
	payments := repository.NewPaymentRepository(repository.NewSequence())
	payer := uuid.New()

	total := repository.MaxLimit + 5
	for i := 0; i < total; i++ {
		_, err := payments.Create(ctx, model.PaymentRecord{
			PayerID: payer,
			Purpose: "SRN publication fee",
			Amount:  1000,
			Method:  model.PaymentMethodUPI,
			Status:  model.PaymentStatusSuccess,
		})
		require.NoError(t, err)
	}

	svc := NewPaymentService(payments, export.NewCSVEncoder(), nil)
	result, err := svc.Export(ctx, repository.PaymentFilter{PayerID: payer}, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.FileName, ".csv")

	records, err := csv.NewReader(strings.NewReader(string(result.Content))).ReadAll()
	require.NoError(t, err)
	// header plus one row per record, no page got dropped
	assert.Len(t, records, total+1)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	payments := repository.NewPaymentRepository(repository.NewSequence())
	svc := NewPaymentService(payments, export.NewCSVEncoder(), nil)

	_, err := svc.Export(context.Background(), repository.PaymentFilter{}, ExportFormat("pdf"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
