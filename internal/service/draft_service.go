package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ResolutionPlanDraft is a working copy of a plan edit, held per plan and
// per author until submitted or discarded. Drafts live for the process
// lifetime only.
type ResolutionPlanDraft struct {
	PlanID   uuid.UUID       `json:"plan_id"`
	AuthorID uuid.UUID       `json:"author_id"`
	Body     json.RawMessage `json:"body"`
	SavedAt  time.Time       `json:"saved_at"`
}

type DraftService struct {
	mu     sync.RWMutex
	drafts map[string]ResolutionPlanDraft
}

func NewDraftService() *DraftService {
	return &DraftService{drafts: map[string]ResolutionPlanDraft{}}
}

func draftKey(planID, authorID uuid.UUID) string {
	return planID.String() + ":" + authorID.String()
}

func (s *DraftService) Save(ctx context.Context, planID, authorID uuid.UUID, body json.RawMessage) (*ResolutionPlanDraft, error) {
	if len(body) == 0 || !json.Valid(body) {
		return nil, fmt.Errorf("%w: draft body must be valid JSON", ErrInvalidInput)
	}

	draft := ResolutionPlanDraft{
		PlanID:   planID,
		AuthorID: authorID,
		Body:     body,
		SavedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.drafts[draftKey(planID, authorID)] = draft
	s.mu.Unlock()
	return &draft, nil
}

func (s *DraftService) Load(ctx context.Context, planID, authorID uuid.UUID) (*ResolutionPlanDraft, error) {
	s.mu.RLock()
	draft, ok := s.drafts[draftKey(planID, authorID)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &draft, nil
}

func (s *DraftService) Discard(ctx context.Context, planID, authorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := draftKey(planID, authorID)
	if _, ok := s.drafts[key]; !ok {
		return ErrNotFound
	}
	delete(s.drafts, key)
	return nil
}
