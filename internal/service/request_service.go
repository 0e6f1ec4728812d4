package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

var validate = validator.New()

type RequestService struct {
	requests   *repository.RequestRepository
	categories []string
}

func NewRequestService(requests *repository.RequestRepository, categories []string) *RequestService {
	return &RequestService{requests: requests, categories: categories}
}

type CreateRequestInput struct {
	Title           string                    `validate:"required,max=200"`
	Description     string                    `validate:"required,max=5000"`
	ServiceCategory []string                  `validate:"required,min=1"`
	ServiceTypes    []string                  `validate:"required,min=1"`
	ScopeOfWork     string                    `validate:"max=10000"`
	BudgetRange     model.BudgetRange         `validate:"-"`
	BudgetNotAvail  bool                      `validate:"-"`
	Questionnaire   []model.QuestionnaireItem `validate:"dive"`
	WorkRequiredBy  time.Time                 `validate:"-"`
	Deadline        time.Time                 `validate:"-"`
	SubmitNow       bool                      `validate:"-"`
}

func (s *RequestService) Create(ctx context.Context, principal model.Principal, input CreateRequestInput) (*model.ServiceRequest, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !input.BudgetNotAvail && input.BudgetRange.Max < input.BudgetRange.Min {
		return nil, fmt.Errorf("%w: budget max below min", ErrInvalidInput)
	}
	for _, category := range input.ServiceCategory {
		if !s.knownCategory(category) {
			return nil, fmt.Errorf("%w: unknown service category %q", ErrInvalidInput, category)
		}
	}

	status := model.RequestStatusDraft
	if input.SubmitNow {
		status = model.RequestStatusOpen
	}

	return s.requests.Create(ctx, model.ServiceRequest{
		Title:           input.Title,
		Description:     input.Description,
		ServiceCategory: input.ServiceCategory,
		ServiceTypes:    input.ServiceTypes,
		ScopeOfWork:     input.ScopeOfWork,
		BudgetRange:     input.BudgetRange,
		BudgetNotAvail:  input.BudgetNotAvail,
		Questionnaire:   input.Questionnaire,
		Status:          status,
		CreatedBy:       principal.UserID,
		WorkRequiredBy:  input.WorkRequiredBy,
		Deadline:        input.Deadline,
	})
}

func (s *RequestService) knownCategory(category string) bool {
	if len(s.categories) == 0 {
		return true
	}
	for _, c := range s.categories {
		if c == category {
			return true
		}
	}
	return false
}

func (s *RequestService) Get(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter, page repository.PageRequest) (repository.Page[model.ServiceRequest], error) {
	return s.requests.List(ctx, filter, page)
}

func (s *RequestService) Stats(ctx context.Context) (model.RequestStats, error) {
	return s.requests.Stats(ctx)
}

type UpdateRequestInput struct {
	Title       *string
	Description *string
	ScopeOfWork *string
	BudgetRange *model.BudgetRange
	Deadline    *time.Time
}

func (s *RequestService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateRequestInput) (*model.ServiceRequest, error) {
	req, err := s.requests.Update(ctx, id, func(req *model.ServiceRequest) error {
		if req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
			return ErrPermissionDenied
		}
		if input.Title != nil {
			req.Title = *input.Title
		}
		if input.Description != nil {
			req.Description = *input.Description
		}
		if input.ScopeOfWork != nil {
			req.ScopeOfWork = *input.ScopeOfWork
		}
		if input.BudgetRange != nil {
			req.BudgetRange = *input.BudgetRange
		}
		if input.Deadline != nil {
			req.Deadline = *input.Deadline
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// SetStatus moves a request to any member of the status vocabulary.
// Transitions are not table-checked beyond enum membership; the workflow
// endpoints on BidService drive the ordinary path.
func (s *RequestService) SetStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.ServiceRequestStatus) (*model.ServiceRequest, error) {
	if !model.ValidRequestStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	req, err := s.requests.Update(ctx, id, func(req *model.ServiceRequest) error {
		if req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
			return ErrPermissionDenied
		}
		req.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}
