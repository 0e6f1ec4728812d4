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

type InvitationService struct {
	professionals *repository.ProfessionalRepository
	requests      *repository.RequestRepository
}

func NewInvitationService(professionals *repository.ProfessionalRepository, requests *repository.RequestRepository) *InvitationService {
	return &InvitationService{professionals: professionals, requests: requests}
}

func (s *InvitationService) ListProfessionals(ctx context.Context, filter repository.ProfessionalFilter, page repository.PageRequest) (repository.Page[model.Professional], error) {
	return s.professionals.List(ctx, filter, page)
}

func (s *InvitationService) ListInvitations(ctx context.Context, filter repository.InvitationFilter, page repository.PageRequest) (repository.Page[model.ProfessionalInvitation], error) {
	return s.professionals.ListInvitations(ctx, filter, page)
}

func (s *InvitationService) Invite(ctx context.Context, principal model.Principal, requestID, professionalID uuid.UUID, message string) (*model.ProfessionalInvitation, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}
	if _, err := s.professionals.Get(ctx, professionalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: professional", ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.professionals.ListInvitations(ctx, repository.InvitationFilter{
		ServiceRequestID: requestID,
		ProfessionalID:   professionalID,
	}, repository.PageRequest{Limit: 1})
	if err != nil {
		return nil, err
	}
	if existing.Total > 0 {
		return nil, fmt.Errorf("%w: professional already invited", ErrInvalidInput)
	}

	return s.professionals.CreateInvitation(ctx, model.ProfessionalInvitation{
		ServiceRequestID: requestID,
		ProfessionalID:   professionalID,
		Message:          message,
	})
}

func (s *InvitationService) Respond(ctx context.Context, id uuid.UUID, accept bool) (*model.ProfessionalInvitation, error) {
	inv, err := s.professionals.UpdateInvitation(ctx, id, func(inv *model.ProfessionalInvitation) error {
		if inv.Status != model.InvitationPending {
			return fmt.Errorf("%w: invitation is %s", ErrInvalidTransition, inv.Status)
		}
		if accept {
			inv.Status = model.InvitationAccepted
		} else {
			inv.Status = model.InvitationDeclined
		}
		now := time.Now().UTC()
		inv.RespondedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}
