package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceRequestStatus string

const (
	RequestStatusDraft            ServiceRequestStatus = "draft"
	RequestStatusOpen             ServiceRequestStatus = "open"
	RequestStatusBidReceived      ServiceRequestStatus = "bid_received"
	RequestStatusUnderNegotiation ServiceRequestStatus = "under_negotiation"
	RequestStatusBidAccepted      ServiceRequestStatus = "bid_accepted"
	RequestStatusPaymentPending   ServiceRequestStatus = "payment_pending"
	RequestStatusWorkOrderIssued  ServiceRequestStatus = "work_order_issued"
	RequestStatusInProgress       ServiceRequestStatus = "in_progress"
	RequestStatusCompleted        ServiceRequestStatus = "completed"
	RequestStatusClosed           ServiceRequestStatus = "closed"
	RequestStatusExpired          ServiceRequestStatus = "expired"
	RequestStatusCancelled        ServiceRequestStatus = "cancelled"
	RequestStatusAwardedToAnother ServiceRequestStatus = "awarded_to_another"
	RequestStatusOnHold           ServiceRequestStatus = "on_hold"
	RequestStatusDisputed         ServiceRequestStatus = "disputed"
)

func ValidRequestStatus(s ServiceRequestStatus) bool {
	switch s {
	case RequestStatusDraft, RequestStatusOpen, RequestStatusBidReceived,
		RequestStatusUnderNegotiation, RequestStatusBidAccepted,
		RequestStatusPaymentPending, RequestStatusWorkOrderIssued,
		RequestStatusInProgress, RequestStatusCompleted, RequestStatusClosed,
		RequestStatusExpired, RequestStatusCancelled,
		RequestStatusAwardedToAnother, RequestStatusOnHold, RequestStatusDisputed:
		return true
	}
	return false
}

type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type RequestDocument struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// QuestionnaireItem is one seeker-authored question that bidders answer
// inline with their bid.
type QuestionnaireItem struct {
	Question  string `json:"question"`
	Mandatory bool   `json:"mandatory"`
}

type ServiceRequest struct {
	ID              uuid.UUID            `json:"id"`
	SRNNumber       string               `json:"srn_number"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	ServiceCategory []string             `json:"service_category"`
	ServiceTypes    []string             `json:"service_types"`
	ScopeOfWork     string               `json:"scope_of_work"`
	BudgetRange     BudgetRange          `json:"budget_range"`
	BudgetNotAvail  bool                 `json:"budget_not_available"`
	Documents       []RequestDocument    `json:"documents"`
	Questionnaire   []QuestionnaireItem  `json:"questionnaire"`
	Status          ServiceRequestStatus `json:"status"`
	CreatedBy       uuid.UUID            `json:"created_by"`
	WorkRequiredBy  time.Time            `json:"work_required_by"`
	Deadline        time.Time            `json:"deadline"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// RequestStats is the dashboard aggregation; every count is derived from
// the store at call time, never cached.
type RequestStats struct {
	Total        int `json:"total"`
	Draft        int `json:"draft"`
	Open         int `json:"open"`
	BidsReceived int `json:"bids_received"`
	InProgress   int `json:"in_progress"`
	Completed    int `json:"completed"`
	Closed       int `json:"closed"`
}
