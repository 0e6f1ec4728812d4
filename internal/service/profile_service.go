package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/fieldpath"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

type ProfileService struct {
	profiles *repository.ProfileRepository
}

func NewProfileService(profiles *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// CalculateCompletion walks the role's section definitions and counts the
// required paths that resolve to a non-empty value. Pure: same profile in,
// same status out, and filling a field can only hold or raise the
// percentage.
func CalculateCompletion(fields map[string]any, role model.ProfileRole) model.CompletionStatus {
	sections := model.SectionsForRole(role)

	status := model.CompletionStatus{Sections: make([]model.SectionStatus, 0, len(sections))}
	mandatoryRequired := 0
	mandatoryCompleted := 0

	for _, section := range sections {
		ss := model.SectionStatus{
			Name:      section.Name,
			Mandatory: section.Mandatory,
			Required:  len(section.RequiredPaths),
		}
		for _, path := range section.RequiredPaths {
			value, ok := fieldpath.Get(fields, path)
			if ok && !fieldpath.IsEmpty(value) {
				ss.Completed++
				continue
			}
			ss.MissingFields = append(ss.MissingFields, path)
			if section.Mandatory {
				status.MissingMandatoryFields = append(status.MissingMandatoryFields, path)
			}
		}
		if ss.Required > 0 {
			ss.Percentage = int(math.Round(float64(ss.Completed) / float64(ss.Required) * 100))
		}
		if section.Mandatory {
			mandatoryRequired += ss.Required
			mandatoryCompleted += ss.Completed
		}
		status.Sections = append(status.Sections, ss)
	}

	if mandatoryRequired > 0 {
		status.OverallPercentage = int(math.Round(float64(mandatoryCompleted) / float64(mandatoryRequired) * 100))
	}
	status.CanGetPermanentNumber = mandatoryRequired > 0 && mandatoryCompleted == mandatoryRequired
	return status
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, model.CompletionStatus, error) {
	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.CompletionStatus{}, ErrNotFound
		}
		return nil, model.CompletionStatus{}, err
	}
	return profile, CalculateCompletion(profile.Fields, profile.Role), nil
}

func (s *ProfileService) Create(ctx context.Context, userID uuid.UUID, role model.ProfileRole, fields map[string]any) (*model.UserProfile, error) {
	if model.SectionsForRole(role) == nil {
		return nil, fmt.Errorf("%w: unknown profile role %q", ErrInvalidInput, role)
	}
	if _, err := s.profiles.GetByUser(ctx, userID); err == nil {
		return nil, fmt.Errorf("%w: profile already exists", ErrInvalidInput)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	profile, err := s.profiles.Create(ctx, model.UserProfile{
		UserID: userID,
		Role:   role,
		Fields: fields,
	})
	if err != nil {
		return nil, err
	}
	return s.recalculate(ctx, profile.UserID)
}

// FieldUpdate is one dotted-path assignment from an edit form.
type FieldUpdate struct {
	Path  string `json:"path" binding:"required"`
	Value any    `json:"value"`
}

// ApplyUpdates writes each dotted-path patch through the copy-on-write
// updater, then refreshes the completion-derived state. The permanent
// registration number is assigned exactly once, at 100% mandatory
// completion, and never revoked afterwards.
func (s *ProfileService) ApplyUpdates(ctx context.Context, userID uuid.UUID, updates []FieldUpdate) (*model.UserProfile, model.CompletionStatus, error) {
	if len(updates) == 0 {
		return nil, model.CompletionStatus{}, fmt.Errorf("%w: no updates", ErrInvalidInput)
	}

	profile, err := s.profiles.Update(ctx, userID, func(p *model.UserProfile) error {
		fields := p.Fields
		for _, update := range updates {
			next, err := fieldpath.Set(fields, update.Path, update.Value)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			fields = next
		}
		p.Fields = fields

		completion := CalculateCompletion(fields, p.Role)
		p.CompletionPercent = completion.OverallPercentage
		if completion.CanGetPermanentNumber && p.PermanentRegNo == "" {
			p.PermanentRegNo = s.profiles.NextPermanentNumber()
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.CompletionStatus{}, ErrNotFound
		}
		return nil, model.CompletionStatus{}, err
	}
	return profile, CalculateCompletion(profile.Fields, profile.Role), nil
}

func (s *ProfileService) recalculate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	profile, err := s.profiles.Update(ctx, userID, func(p *model.UserProfile) error {
		completion := CalculateCompletion(p.Fields, p.Role)
		p.CompletionPercent = completion.OverallPercentage
		if completion.CanGetPermanentNumber && p.PermanentRegNo == "" {
			p.PermanentRegNo = s.profiles.NextPermanentNumber()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
