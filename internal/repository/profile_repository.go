package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles []model.UserProfile
	seq      *Sequence
}

func NewProfileRepository(seq *Sequence) *ProfileRepository {
	return &ProfileRepository{seq: seq}
}

func (r *ProfileRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.profiles {
		if r.profiles[i].UserID == userID {
			p := cloneProfile(r.profiles[i])
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.UserProfile) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	profile.ID = uuid.New()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.Fields == nil {
		profile.Fields = map[string]any{}
	}
	if profile.TemporaryRegNo == "" {
		profile.TemporaryRegNo = r.seq.Next("TMP")
	}

	r.profiles = append(r.profiles, profile)
	out := cloneProfile(profile)
	return &out, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, fn func(*model.UserProfile) error) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.profiles {
		if r.profiles[i].UserID != userID {
			continue
		}
		if err := fn(&r.profiles[i]); err != nil {
			return nil, err
		}
		r.profiles[i].UpdatedAt = time.Now().UTC()
		p := cloneProfile(r.profiles[i])
		return &p, nil
	}
	return nil, ErrNotFound
}

// NextPermanentNumber hands out the permanent registration number assigned
// at full mandatory completion.
func (r *ProfileRepository) NextPermanentNumber() string {
	return r.seq.Next("PRN")
}

// cloneProfile copies the top level of the fields document. Nested levels
// are immutable by convention: updates go through fieldpath.Set, which is
// copy-on-write all the way down.
func cloneProfile(p model.UserProfile) model.UserProfile {
	fields := make(map[string]any, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = v
	}
	p.Fields = fields
	return p
}
