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

type ChatService struct {
	chat *repository.ChatRepository
}

func NewChatService(chat *repository.ChatRepository) *ChatService {
	return &ChatService{chat: chat}
}

func (s *ChatService) ListThreads(ctx context.Context, filter repository.ThreadFilter, page repository.PageRequest) (repository.Page[model.ChatThread], error) {
	return s.chat.List(ctx, filter, page)
}

func (s *ChatService) GetThread(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.ChatThread, error) {
	thread, err := s.chat.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !thread.HasParticipant(principal.UserID) && !principal.IsSystemAdmin() {
		return nil, ErrNotParticipant
	}
	return thread, nil
}

type CreateThreadInput struct {
	Subject          string
	ServiceRequestID *uuid.UUID
	Participants     []model.ChatParticipant
}

func (s *ChatService) CreateThread(ctx context.Context, principal model.Principal, input CreateThreadInput) (*model.ChatThread, error) {
	if input.Subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	if len(input.Participants) < 2 {
		return nil, fmt.Errorf("%w: a thread needs at least two participants", ErrInvalidInput)
	}

	thread := model.ChatThread{
		Subject:          input.Subject,
		ServiceRequestID: input.ServiceRequestID,
		Participants:     input.Participants,
	}
	if !thread.HasParticipant(principal.UserID) {
		return nil, fmt.Errorf("%w: creator must be a participant", ErrInvalidInput)
	}
	return s.chat.Create(ctx, thread)
}

type SendMessageInput struct {
	Body        string
	Type        model.MessageType
	Attachments []model.Attachment
}

// SendMessage appends the message and bumps the unread count of every
// participant except the sender, whose count is untouched. Runs under the
// thread store lock, so concurrent sends cannot lose increments.
func (s *ChatService) SendMessage(ctx context.Context, principal model.Principal, threadID uuid.UUID, input SendMessageInput) (*model.ChatThread, error) {
	if input.Body == "" && len(input.Attachments) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidInput)
	}
	msgType := input.Type
	if msgType == "" {
		msgType = model.MessageTypeText
	}
	if len(input.Attachments) > 0 {
		msgType = model.MessageTypeAttachment
	}

	thread, err := s.chat.Update(ctx, threadID, func(t *model.ChatThread) error {
		if !t.HasParticipant(principal.UserID) {
			return ErrNotParticipant
		}
		now := time.Now().UTC()
		t.Messages = append(t.Messages, model.ChatMessage{
			ID:          uuid.New(),
			ThreadID:    t.ID,
			SenderID:    principal.UserID,
			SenderRole:  principal.Role,
			Type:        msgType,
			Status:      model.MessageStatusSent,
			Body:        input.Body,
			Attachments: input.Attachments,
			SentAt:      now,
		})
		t.LastMessageAt = now
		for _, p := range t.Participants {
			if p.UserID == principal.UserID {
				continue
			}
			t.UnreadCount[p.UserID.String()]++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return thread, nil
}

// MarkRead zeroes the caller's unread counter and flips message status to
// read for messages from other senders.
func (s *ChatService) MarkRead(ctx context.Context, principal model.Principal, threadID uuid.UUID) (*model.ChatThread, error) {
	thread, err := s.chat.Update(ctx, threadID, func(t *model.ChatThread) error {
		if !t.HasParticipant(principal.UserID) {
			return ErrNotParticipant
		}
		t.UnreadCount[principal.UserID.String()] = 0
		for i := range t.Messages {
			if t.Messages[i].SenderID != principal.UserID {
				t.Messages[i].Status = model.MessageStatusRead
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return thread, nil
}
