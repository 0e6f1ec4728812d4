package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

type ProfessionalFilter struct {
	MinRating      float64
	Specialization string
	Location       string
	Search         string
}

type InvitationFilter struct {
	ServiceRequestID uuid.UUID
	ProfessionalID   uuid.UUID
	Statuses         []model.InvitationStatus
}

type ProfessionalRepository struct {
	mu            sync.RWMutex
	professionals []model.Professional
	invitations   []model.ProfessionalInvitation
}

func NewProfessionalRepository() *ProfessionalRepository {
	return &ProfessionalRepository{}
}

func (r *ProfessionalRepository) Create(ctx context.Context, p model.Professional) (*model.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = uuid.New()
	if p.MemberSince.IsZero() {
		p.MemberSince = time.Now().UTC()
	}
	r.professionals = append(r.professionals, p)
	return &p, nil
}

func (r *ProfessionalRepository) List(ctx context.Context, filter ProfessionalFilter, page PageRequest) (Page[model.Professional], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.Professional, 0, len(r.professionals))
	for _, p := range r.professionals {
		if filter.MinRating > 0 && p.Rating < filter.MinRating {
			continue
		}
		if filter.Specialization != "" && !containsString(p.Specialization, filter.Specialization) {
			continue
		}
		if filter.Location != "" && !containsFold(p.Location, filter.Location) {
			continue
		}
		if !matchText(filter.Search, p.Name, p.Email) {
			continue
		}
		filtered = append(filtered, p)
	}
	return paginate(filtered, page), nil
}

func (r *ProfessionalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.professionals {
		if r.professionals[i].ID == id {
			p := r.professionals[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *ProfessionalRepository) ListInvitations(ctx context.Context, filter InvitationFilter, page PageRequest) (Page[model.ProfessionalInvitation], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.ProfessionalInvitation, 0, len(r.invitations))
	for _, inv := range r.invitations {
		if filter.ServiceRequestID != uuid.Nil && inv.ServiceRequestID != filter.ServiceRequestID {
			continue
		}
		if filter.ProfessionalID != uuid.Nil && inv.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsInvitationStatus(filter.Statuses, inv.Status) {
			continue
		}
		filtered = append(filtered, inv)
	}
	return paginate(filtered, page), nil
}

func (r *ProfessionalRepository) CreateInvitation(ctx context.Context, inv model.ProfessionalInvitation) (*model.ProfessionalInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv.ID = uuid.New()
	inv.InvitedAt = time.Now().UTC()
	if inv.Status == "" {
		inv.Status = model.InvitationPending
	}

	r.invitations = append(r.invitations, inv)
	return &inv, nil
}

func (r *ProfessionalRepository) UpdateInvitation(ctx context.Context, id uuid.UUID, fn func(*model.ProfessionalInvitation) error) (*model.ProfessionalInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.invitations {
		if r.invitations[i].ID != id {
			continue
		}
		if err := fn(&r.invitations[i]); err != nil {
			return nil, err
		}
		inv := r.invitations[i]
		return &inv, nil
	}
	return nil, ErrNotFound
}

func containsInvitationStatus(set []model.InvitationStatus, s model.InvitationStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
