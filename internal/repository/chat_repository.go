package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

type ThreadFilter struct {
	ParticipantID    uuid.UUID
	ServiceRequestID uuid.UUID
	Search           string
}

type ChatRepository struct {
	mu      sync.RWMutex
	threads []model.ChatThread
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

func (r *ChatRepository) List(ctx context.Context, filter ThreadFilter, page PageRequest) (Page[model.ChatThread], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.ChatThread, 0, len(r.threads))
	for i := range r.threads {
		t := &r.threads[i]
		if filter.ParticipantID != uuid.Nil && !t.HasParticipant(filter.ParticipantID) {
			continue
		}
		if filter.ServiceRequestID != uuid.Nil &&
			(t.ServiceRequestID == nil || *t.ServiceRequestID != filter.ServiceRequestID) {
			continue
		}
		if !matchText(filter.Search, t.Subject) {
			continue
		}
		filtered = append(filtered, cloneThread(*t))
	}
	return paginate(filtered, page), nil
}

func (r *ChatRepository) Get(ctx context.Context, id uuid.UUID) (*model.ChatThread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.threads {
		if r.threads[i].ID == id {
			t := cloneThread(r.threads[i])
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *ChatRepository) Create(ctx context.Context, thread model.ChatThread) (*model.ChatThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	thread.ID = uuid.New()
	thread.CreatedAt = time.Now().UTC()
	if thread.UnreadCount == nil {
		thread.UnreadCount = map[string]int{}
	}
	for _, p := range thread.Participants {
		if _, ok := thread.UnreadCount[p.UserID.String()]; !ok {
			thread.UnreadCount[p.UserID.String()] = 0
		}
	}

	r.threads = append(r.threads, thread)
	out := cloneThread(thread)
	return &out, nil
}

// Update runs fn on the stored thread under the write lock, so message
// appends and unread-count adjustments cannot interleave.
func (r *ChatRepository) Update(ctx context.Context, id uuid.UUID, fn func(*model.ChatThread) error) (*model.ChatThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.threads {
		if r.threads[i].ID != id {
			continue
		}
		if err := fn(&r.threads[i]); err != nil {
			return nil, err
		}
		out := cloneThread(r.threads[i])
		return &out, nil
	}
	return nil, ErrNotFound
}

// cloneThread deep-copies the mutable parts so callers cannot reach back
// into the store.
func cloneThread(t model.ChatThread) model.ChatThread {
	messages := make([]model.ChatMessage, len(t.Messages))
	copy(messages, t.Messages)
	t.Messages = messages

	participants := make([]model.ChatParticipant, len(t.Participants))
	copy(participants, t.Participants)
	t.Participants = participants

	unread := make(map[string]int, len(t.UnreadCount))
	for k, v := range t.UnreadCount {
		unread[k] = v
	}
	t.UnreadCount = unread
	return t
}
