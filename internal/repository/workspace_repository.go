package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

type EntityFilter struct {
	OwnerID uuid.UUID
	Search  string
}

type SubscriptionFilter struct {
	EntityID   uuid.UUID
	ModuleCode string
	Statuses   []model.SubscriptionStatus
}

type WorkspaceRepository struct {
	mu            sync.RWMutex
	entities      []model.WorkspaceEntity
	subscriptions []model.Subscription
}

func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{}
}

func (r *WorkspaceRepository) ListEntities(ctx context.Context, filter EntityFilter, page PageRequest) (Page[model.WorkspaceEntity], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.WorkspaceEntity, 0, len(r.entities))
	for i := range r.entities {
		e := r.entities[i]
		if filter.OwnerID != uuid.Nil && e.OwnerID != filter.OwnerID {
			continue
		}
		if !matchText(filter.Search, e.Name, e.CIN) {
			continue
		}
		filtered = append(filtered, cloneEntity(e))
	}
	return paginate(filtered, page), nil
}

func (r *WorkspaceRepository) GetEntity(ctx context.Context, id uuid.UUID) (*model.WorkspaceEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entities {
		if r.entities[i].ID == id {
			e := cloneEntity(r.entities[i])
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (r *WorkspaceRepository) CreateEntity(ctx context.Context, entity model.WorkspaceEntity) (*model.WorkspaceEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity.ID = uuid.New()
	entity.CreatedAt = time.Now().UTC()
	r.entities = append(r.entities, entity)

	out := cloneEntity(entity)
	return &out, nil
}

func (r *WorkspaceRepository) UpdateEntity(ctx context.Context, id uuid.UUID, fn func(*model.WorkspaceEntity) error) (*model.WorkspaceEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entities {
		if r.entities[i].ID != id {
			continue
		}
		if err := fn(&r.entities[i]); err != nil {
			return nil, err
		}
		e := cloneEntity(r.entities[i])
		return &e, nil
	}
	return nil, ErrNotFound
}

func (r *WorkspaceRepository) ListSubscriptions(ctx context.Context, filter SubscriptionFilter, page PageRequest) (Page[model.Subscription], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.Subscription, 0, len(r.subscriptions))
	for _, sub := range r.subscriptions {
		if filter.EntityID != uuid.Nil && sub.EntityID != filter.EntityID {
			continue
		}
		if filter.ModuleCode != "" && sub.ModuleCode != filter.ModuleCode {
			continue
		}
		if len(filter.Statuses) > 0 && !containsSubscriptionStatus(filter.Statuses, sub.Status) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return paginate(filtered, page), nil
}

func (r *WorkspaceRepository) CreateSubscription(ctx context.Context, sub model.Subscription) (*model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub.ID = uuid.New()
	sub.RequestedAt = time.Now().UTC()
	if sub.Status == "" {
		sub.Status = model.SubscriptionRequested
	}

	r.subscriptions = append(r.subscriptions, sub)
	return &sub, nil
}

func (r *WorkspaceRepository) UpdateSubscription(ctx context.Context, id uuid.UUID, fn func(*model.Subscription) error) (*model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subscriptions {
		if r.subscriptions[i].ID != id {
			continue
		}
		if err := fn(&r.subscriptions[i]); err != nil {
			return nil, err
		}
		sub := r.subscriptions[i]
		return &sub, nil
	}
	return nil, ErrNotFound
}

func cloneEntity(e model.WorkspaceEntity) model.WorkspaceEntity {
	modules := make([]model.WorkspaceModule, len(e.Modules))
	copy(modules, e.Modules)
	e.Modules = modules

	members := make([]model.EntityTeamMember, len(e.TeamMembers))
	copy(members, e.TeamMembers)
	e.TeamMembers = members
	return e
}

func containsSubscriptionStatus(set []model.SubscriptionStatus, s model.SubscriptionStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
