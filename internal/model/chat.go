package model

import (
	"time"

	"github.com/google/uuid"
)

type ParticipantRole string

const (
	RoleSeeker      ParticipantRole = "service_seeker"
	RoleProvider    ParticipantRole = "service_provider"
	RoleTeamMember  ParticipantRole = "team_member"
	RoleSystemAdmin ParticipantRole = "system_admin"
	RoleFacilitator ParticipantRole = "facilitator"
)

type MessageType string

const (
	MessageTypeText       MessageType = "text"
	MessageTypeAttachment MessageType = "attachment"
	MessageTypeSystem     MessageType = "system"
)

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

type Attachment struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type ChatMessage struct {
	ID          uuid.UUID       `json:"id"`
	ThreadID    uuid.UUID       `json:"thread_id"`
	SenderID    uuid.UUID       `json:"sender_id"`
	SenderRole  ParticipantRole `json:"sender_role"`
	Type        MessageType     `json:"type"`
	Status      MessageStatus   `json:"status"`
	Body        string          `json:"body"`
	Attachments []Attachment    `json:"attachments,omitempty"`
	SentAt      time.Time       `json:"sent_at"`
}

type ChatParticipant struct {
	UserID uuid.UUID       `json:"user_id"`
	Name   string          `json:"name"`
	Role   ParticipantRole `json:"role"`
}

// ChatThread owns its messages in send order. UnreadCount is keyed by
// participant id; the sender's own entry never moves on send.
type ChatThread struct {
	ID               uuid.UUID         `json:"id"`
	ServiceRequestID *uuid.UUID        `json:"service_request_id,omitempty"`
	Subject          string            `json:"subject"`
	Participants     []ChatParticipant `json:"participants"`
	Messages         []ChatMessage     `json:"messages"`
	UnreadCount      map[string]int    `json:"unread_count"`
	LastMessageAt    time.Time         `json:"last_message_at"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (t *ChatThread) HasParticipant(userID uuid.UUID) bool {
	for _, p := range t.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
