package model

import (
	"time"

	"github.com/google/uuid"
)

type Professional struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Rating         float64   `json:"rating"`
	Specialization []string  `json:"specialization"`
	Location       string    `json:"location"`
	CompletedJobs  int       `json:"completed_jobs"`
	MemberSince    time.Time `json:"member_since"`
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

type ProfessionalInvitation struct {
	ID               uuid.UUID        `json:"id"`
	ServiceRequestID uuid.UUID        `json:"service_request_id"`
	ProfessionalID   uuid.UUID        `json:"professional_id"`
	Message          string           `json:"message,omitempty"`
	Status           InvitationStatus `json:"status"`
	InvitedAt        time.Time        `json:"invited_at"`
	RespondedAt      *time.Time       `json:"responded_at,omitempty"`
}
