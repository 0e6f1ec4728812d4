package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

type WorkspaceService struct {
	workspace *repository.WorkspaceRepository
	now       func() time.Time
}

func NewWorkspaceService(workspace *repository.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspace: workspace, now: time.Now}
}

// ListEntities reports each module at its effective status for the current
// time, so an expired window never shows as active.
func (s *WorkspaceService) ListEntities(ctx context.Context, filter repository.EntityFilter, page repository.PageRequest) (repository.Page[model.WorkspaceEntity], error) {
	result, err := s.workspace.ListEntities(ctx, filter, page)
	if err != nil {
		return result, err
	}
	now := s.now().UTC()
	for i := range result.Data {
		for j := range result.Data[i].Modules {
			result.Data[i].Modules[j].Status = result.Data[i].Modules[j].EffectiveStatus(now)
		}
	}
	return result, nil
}

func (s *WorkspaceService) GetEntity(ctx context.Context, id uuid.UUID) (*model.WorkspaceEntity, error) {
	entity, err := s.workspace.GetEntity(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := s.now().UTC()
	for i := range entity.Modules {
		entity.Modules[i].Status = entity.Modules[i].EffectiveStatus(now)
	}
	return entity, nil
}

type AddTeamMemberInput struct {
	UserID      uuid.UUID
	Name        string
	Email       string
	Permissions map[string][]model.ModulePermission
}

func (s *WorkspaceService) AddTeamMember(ctx context.Context, principal model.Principal, entityID uuid.UUID, input AddTeamMemberInput) (*model.WorkspaceEntity, error) {
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	entity, err := s.workspace.UpdateEntity(ctx, entityID, func(e *model.WorkspaceEntity) error {
		if e.OwnerID != principal.UserID && !principal.IsSystemAdmin() {
			return ErrPermissionDenied
		}
		for _, member := range e.TeamMembers {
			if member.UserID == input.UserID || member.Email == input.Email {
				return fmt.Errorf("%w: member already on the team", ErrInvalidInput)
			}
		}
		e.TeamMembers = append(e.TeamMembers, model.EntityTeamMember{
			UserID:      input.UserID,
			Name:        input.Name,
			Email:       input.Email,
			Permissions: input.Permissions,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

func (s *WorkspaceService) SetMemberPermissions(ctx context.Context, principal model.Principal, entityID, userID uuid.UUID, permissions map[string][]model.ModulePermission) (*model.WorkspaceEntity, error) {
	entity, err := s.workspace.UpdateEntity(ctx, entityID, func(e *model.WorkspaceEntity) error {
		if e.OwnerID != principal.UserID && !principal.IsSystemAdmin() {
			return ErrPermissionDenied
		}
		for i := range e.TeamMembers {
			if e.TeamMembers[i].UserID == userID {
				e.TeamMembers[i].Permissions = permissions
				return nil
			}
		}
		return fmt.Errorf("%w: team member", ErrNotFound)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

// RequestSubscription opens a subscription request; activation adds the
// module to the entity with its billing window.
func (s *WorkspaceService) RequestSubscription(ctx context.Context, principal model.Principal, entityID uuid.UUID, moduleCode, moduleName string) (*model.Subscription, error) {
	if moduleCode == "" {
		return nil, fmt.Errorf("%w: module code is required", ErrInvalidInput)
	}
	entity, err := s.workspace.GetEntity(ctx, entityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entity.OwnerID != principal.UserID && !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}
	for _, module := range entity.Modules {
		if module.Code == moduleCode && module.EffectiveStatus(s.now().UTC()) == model.ModuleStatusActive {
			return nil, fmt.Errorf("%w: module %s already active", ErrInvalidInput, moduleCode)
		}
	}
	return s.workspace.CreateSubscription(ctx, model.Subscription{
		EntityID:   entityID,
		ModuleCode: moduleCode,
		ModuleName: moduleName,
	})
}

func (s *WorkspaceService) ActivateSubscription(ctx context.Context, principal model.Principal, subscriptionID uuid.UUID, months int) (*model.Subscription, error) {
	if !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}
	if months < 1 {
		months = 12
	}

	sub, err := s.workspace.UpdateSubscription(ctx, subscriptionID, func(sub *model.Subscription) error {
		if sub.Status != model.SubscriptionRequested {
			return fmt.Errorf("%w: subscription is %s", ErrInvalidTransition, sub.Status)
		}
		now := s.now().UTC()
		sub.Status = model.SubscriptionActive
		sub.ActivatedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	moduleName := sub.ModuleName
	if moduleName == "" {
		moduleName = model.TitleCaseStatus(sub.ModuleCode)
	}

	now := s.now().UTC()
	_, err = s.workspace.UpdateEntity(ctx, sub.EntityID, func(e *model.WorkspaceEntity) error {
		for i := range e.Modules {
			if e.Modules[i].Code == sub.ModuleCode {
				if sub.ModuleName != "" {
					e.Modules[i].Name = sub.ModuleName
				}
				e.Modules[i].Status = model.ModuleStatusActive
				e.Modules[i].StartAt = now
				e.Modules[i].EndAt = now.AddDate(0, months, 0)
				return nil
			}
		}
		e.Modules = append(e.Modules, model.WorkspaceModule{
			ID:      uuid.New(),
			Code:    sub.ModuleCode,
			Name:    moduleName,
			Status:  model.ModuleStatusActive,
			StartAt: now,
			EndAt:   now.AddDate(0, months, 0),
		})
		return nil
	})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return sub, nil
}
