package model

import (
	"time"

	"github.com/google/uuid"
)

type BidStatus string

const (
	BidStatusDraft       BidStatus = "draft"
	BidStatusSubmitted   BidStatus = "submitted"
	BidStatusUnderReview BidStatus = "under_review"
	BidStatusNegotiating BidStatus = "negotiating"
	BidStatusAccepted    BidStatus = "accepted"
	BidStatusRejected    BidStatus = "rejected"
	BidStatusWithdrawn   BidStatus = "withdrawn"
	BidStatusExpired     BidStatus = "expired"
)

func ValidBidStatus(s BidStatus) bool {
	switch s {
	case BidStatusDraft, BidStatusSubmitted, BidStatusUnderReview,
		BidStatusNegotiating, BidStatusAccepted, BidStatusRejected,
		BidStatusWithdrawn, BidStatusExpired:
		return true
	}
	return false
}

type PaymentStructure string

const (
	PaymentLumpSum   PaymentStructure = "lump_sum"
	PaymentMilestone PaymentStructure = "milestone_based"
	PaymentMonthly   PaymentStructure = "monthly_retainer"
)

type Milestone struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	DueAt  string  `json:"due_at,omitempty"`
}

// BidFinancials carries the fee breakdown. TotalBidAmount must equal
// ProfessionalFee + PlatformFee + GST + Reimbursements; services reject a
// bid whose components do not add up.
type BidFinancials struct {
	ProfessionalFee  float64          `json:"professional_fee"`
	PlatformFee      float64          `json:"platform_fee"`
	GST              float64          `json:"gst"`
	Reimbursements   float64          `json:"reimbursements"`
	TotalBidAmount   float64          `json:"total_bid_amount"`
	PaymentStructure PaymentStructure `json:"payment_structure"`
	Milestones       []Milestone      `json:"milestones,omitempty"`
}

func (f BidFinancials) ComponentSum() float64 {
	return f.ProfessionalFee + f.PlatformFee + f.GST + f.Reimbursements
}

type NegotiationMessage struct {
	From   uuid.UUID `json:"from"`
	Body   string    `json:"body"`
	Offer  *float64  `json:"offer,omitempty"`
	SentAt time.Time `json:"sent_at"`
}

type NegotiationThread struct {
	OpenedAt time.Time            `json:"opened_at"`
	Messages []NegotiationMessage `json:"messages"`
}

type Bid struct {
	ID               uuid.UUID          `json:"id"`
	BidNumber        string             `json:"bid_number"`
	ServiceRequestID uuid.UUID          `json:"service_request_id"`
	ProviderID       uuid.UUID          `json:"provider_id"`
	Financials       BidFinancials      `json:"financials"`
	DeliveryDate     time.Time          `json:"delivery_date"`
	AdditionalInputs string             `json:"additional_inputs,omitempty"`
	Status           BidStatus          `json:"status"`
	Negotiation      *NegotiationThread `json:"negotiation,omitempty"`
	IsInvited        bool               `json:"is_invited"`
	SubmittedAt      time.Time          `json:"submitted_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type WorkOrderStatus string

const (
	WorkOrderIssued    WorkOrderStatus = "issued"
	WorkOrderSigned    WorkOrderStatus = "signed"
	WorkOrderCompleted WorkOrderStatus = "completed"
)

// WorkOrderDocument bundles what the printable work order needs.
type WorkOrderDocument struct {
	Order   WorkOrder
	Request ServiceRequest
	Bid     Bid
}

// WorkOrder is the contractual artifact issued once a bid is accepted and
// the platform payment clears.
type WorkOrder struct {
	ID               uuid.UUID       `json:"id"`
	WONumber         string          `json:"wo_number"`
	ServiceRequestID uuid.UUID       `json:"service_request_id"`
	BidID            uuid.UUID       `json:"bid_id"`
	ProviderID       uuid.UUID       `json:"provider_id"`
	SeekerID         uuid.UUID       `json:"seeker_id"`
	Amount           float64         `json:"amount"`
	Status           WorkOrderStatus `json:"status"`
	IssuedAt         time.Time       `json:"issued_at"`
}
