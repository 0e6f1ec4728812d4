package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

type BidFilter struct {
	ServiceRequestID uuid.UUID
	ProviderID       uuid.UUID
	Statuses         []model.BidStatus
	MinAmount        float64
}

type BidRepository struct {
	mu   sync.RWMutex
	bids []model.Bid
	seq  *Sequence
}

func NewBidRepository(seq *Sequence) *BidRepository {
	return &BidRepository{seq: seq}
}

func (r *BidRepository) List(ctx context.Context, filter BidFilter, page PageRequest) (Page[model.Bid], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.Bid, 0, len(r.bids))
	for _, bid := range r.bids {
		if filter.ServiceRequestID != uuid.Nil && bid.ServiceRequestID != filter.ServiceRequestID {
			continue
		}
		if filter.ProviderID != uuid.Nil && bid.ProviderID != filter.ProviderID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsBidStatus(filter.Statuses, bid.Status) {
			continue
		}
		if filter.MinAmount > 0 && bid.Financials.TotalBidAmount < filter.MinAmount {
			continue
		}
		filtered = append(filtered, bid)
	}
	return paginate(filtered, page), nil
}

func (r *BidRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.bids {
		if r.bids[i].ID == id {
			bid := r.bids[i]
			return &bid, nil
		}
	}
	return nil, ErrNotFound
}

func (r *BidRepository) Create(ctx context.Context, bid model.Bid) (*model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	bid.ID = uuid.New()
	bid.BidNumber = r.seq.Next("BID")
	bid.SubmittedAt = now
	bid.UpdatedAt = now
	if bid.Status == "" {
		bid.Status = model.BidStatusDraft
	}

	r.bids = append(r.bids, bid)
	return &bid, nil
}

func (r *BidRepository) Update(ctx context.Context, id uuid.UUID, fn func(*model.Bid) error) (*model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bids {
		if r.bids[i].ID != id {
			continue
		}
		if err := fn(&r.bids[i]); err != nil {
			return nil, err
		}
		r.bids[i].UpdatedAt = time.Now().UTC()
		bid := r.bids[i]
		return &bid, nil
	}
	return nil, ErrNotFound
}

// UpdateWhere applies fn to every bid the predicate selects, under one
// write lock. Used to mark sibling bids when one is accepted.
func (r *BidRepository) UpdateWhere(ctx context.Context, match func(model.Bid) bool, fn func(*model.Bid)) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	now := time.Now().UTC()
	for i := range r.bids {
		if !match(r.bids[i]) {
			continue
		}
		fn(&r.bids[i])
		r.bids[i].UpdatedAt = now
		updated++
	}
	return updated, nil
}

func containsBidStatus(set []model.BidStatus, s model.BidStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
