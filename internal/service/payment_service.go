package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

type StatementEncoder interface {
	Encode(records []model.PaymentRecord) ([]byte, error)
}

type PaymentService struct {
	payments *repository.PaymentRepository
	csv      StatementEncoder
	excel    StatementEncoder
}

func NewPaymentService(payments *repository.PaymentRepository, csv, excel StatementEncoder) *PaymentService {
	return &PaymentService{payments: payments, csv: csv, excel: excel}
}

func (s *PaymentService) History(ctx context.Context, filter repository.PaymentFilter, page repository.PageRequest) (repository.Page[model.PaymentRecord], error) {
	return s.payments.List(ctx, filter, page)
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Export renders the full filtered history, not just one page.
func (s *PaymentService) Export(ctx context.Context, filter repository.PaymentFilter, format ExportFormat) (*ExportResult, error) {
	all := make([]model.PaymentRecord, 0, repository.MaxLimit)
	page := repository.PageRequest{Page: 1, Limit: repository.MaxLimit}
	for {
		batch, err := s.payments.List(ctx, filter, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch.Data...)
		if page.Page >= batch.TotalPages {
			break
		}
		page.Page++
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportCSV:
		content, err := s.csv.Encode(all)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("payment-history-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportXLSX:
		content, err := s.excel.Encode(all)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("payment-history-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, format)
	}
}

// FeeBreakdown computes each component's share of the total. A zero total
// yields zero shares for every component instead of dividing by zero.
func FeeBreakdown(components []model.FeeComponent) []model.FeeBreakdown {
	var total float64
	for _, c := range components {
		total += c.Amount
	}

	out := make([]model.FeeBreakdown, 0, len(components))
	for _, c := range components {
		share := 0.0
		if total > 0 {
			share = math.Round(c.Amount/total*10000) / 100
		}
		out = append(out, model.FeeBreakdown{Component: c, Share: share})
	}
	return out
}
