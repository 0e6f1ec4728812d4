package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

type PaymentFilter struct {
	PayerID  uuid.UUID
	Statuses []model.PaymentStatus
	Method   model.PaymentMethod
	From     time.Time
	To       time.Time
	Search   string
}

type PaymentRepository struct {
	mu       sync.RWMutex
	payments []model.PaymentRecord
	orders   []model.WorkOrder
	seq      *Sequence
}

func NewPaymentRepository(seq *Sequence) *PaymentRepository {
	return &PaymentRepository{seq: seq}
}

func (r *PaymentRepository) List(ctx context.Context, filter PaymentFilter, page PageRequest) (Page[model.PaymentRecord], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.PaymentRecord, 0, len(r.payments))
	for _, p := range r.payments {
		if filter.PayerID != uuid.Nil && p.PayerID != filter.PayerID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsPaymentStatus(filter.Statuses, p.Status) {
			continue
		}
		if filter.Method != "" && p.Method != filter.Method {
			continue
		}
		if !filter.From.IsZero() && p.PaidAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && p.PaidAt.After(filter.To) {
			continue
		}
		if !matchText(filter.Search, p.ReceiptNumber, p.Purpose) {
			continue
		}
		filtered = append(filtered, p)
	}
	return paginate(filtered, page), nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment model.PaymentRecord) (*model.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment.ID = uuid.New()
	payment.ReceiptNumber = r.seq.Next("RCPT")
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	if payment.Status == "" {
		payment.Status = model.PaymentStatusPending
	}

	r.payments = append(r.payments, payment)
	return &payment, nil
}

func (r *PaymentRepository) UpdatePayment(ctx context.Context, id uuid.UUID, fn func(*model.PaymentRecord) error) (*model.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.payments {
		if r.payments[i].ID != id {
			continue
		}
		if err := fn(&r.payments[i]); err != nil {
			return nil, err
		}
		p := r.payments[i]
		return &p, nil
	}
	return nil, ErrNotFound
}

func (r *PaymentRepository) CreateWorkOrder(ctx context.Context, order model.WorkOrder) (*model.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.New()
	order.WONumber = r.seq.Next("WO")
	order.IssuedAt = time.Now().UTC()
	if order.Status == "" {
		order.Status = model.WorkOrderIssued
	}

	r.orders = append(r.orders, order)
	return &order, nil
}

func (r *PaymentRepository) GetWorkOrder(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (r *PaymentRepository) ListWorkOrders(ctx context.Context, requestID uuid.UUID) ([]model.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.WorkOrder, 0, 1)
	for _, o := range r.orders {
		if requestID != uuid.Nil && o.ServiceRequestID != requestID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func containsPaymentStatus(set []model.PaymentStatus, s model.PaymentStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
