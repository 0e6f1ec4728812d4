package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

// RequestFilter composes zero or more predicates. Any zero-valued field
// applies no constraint; it never means "match nothing".
type RequestFilter struct {
	Statuses  []model.ServiceRequestStatus
	Category  string
	Search    string
	CreatedBy uuid.UUID
	From      time.Time
	To        time.Time
}

type RequestRepository struct {
	mu       sync.RWMutex
	requests []model.ServiceRequest
	seq      *Sequence
}

func NewRequestRepository(seq *Sequence) *RequestRepository {
	return &RequestRepository{seq: seq}
}

func (r *RequestRepository) List(ctx context.Context, filter RequestFilter, page PageRequest) (Page[model.ServiceRequest], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.ServiceRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if !filter.matches(req) {
			continue
		}
		filtered = append(filtered, req)
	}
	return paginate(filtered, page), nil
}

func (f RequestFilter) matches(req model.ServiceRequest) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, req.Status) {
		return false
	}
	if f.Category != "" && !containsString(req.ServiceCategory, f.Category) {
		return false
	}
	if !matchText(f.Search, req.Title, req.Description) {
		return false
	}
	if f.CreatedBy != uuid.Nil && req.CreatedBy != f.CreatedBy {
		return false
	}
	if !f.From.IsZero() && req.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && req.CreatedAt.After(f.To) {
		return false
	}
	return true
}

func (r *RequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.requests {
		if r.requests[i].ID == id {
			req := r.requests[i]
			return &req, nil
		}
	}
	return nil, ErrNotFound
}

func (r *RequestRepository) Create(ctx context.Context, req model.ServiceRequest) (*model.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	req.ID = uuid.New()
	req.SRNNumber = r.seq.Next("SRN")
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = model.RequestStatusDraft
	}

	r.requests = append(r.requests, req)
	return &req, nil
}

// Update applies fn to the stored record under the write lock and returns
// the mutated copy. Callers compose field patches and status moves inside
// fn without a read-modify-write race.
func (r *RequestRepository) Update(ctx context.Context, id uuid.UUID, fn func(*model.ServiceRequest) error) (*model.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.requests {
		if r.requests[i].ID != id {
			continue
		}
		if err := fn(&r.requests[i]); err != nil {
			return nil, err
		}
		r.requests[i].UpdatedAt = time.Now().UTC()
		req := r.requests[i]
		return &req, nil
	}
	return nil, ErrNotFound
}

func (r *RequestRepository) Stats(ctx context.Context) (model.RequestStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := model.RequestStats{Total: len(r.requests)}
	for _, req := range r.requests {
		switch req.Status {
		case model.RequestStatusDraft:
			stats.Draft++
		case model.RequestStatusOpen:
			stats.Open++
		case model.RequestStatusBidReceived, model.RequestStatusUnderNegotiation:
			stats.BidsReceived++
		case model.RequestStatusInProgress, model.RequestStatusWorkOrderIssued:
			stats.InProgress++
		case model.RequestStatusCompleted:
			stats.Completed++
		case model.RequestStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func containsStatus(set []model.ServiceRequestStatus, s model.ServiceRequestStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
