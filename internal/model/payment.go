package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodNetBanking PaymentMethod = "net_banking"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCard       PaymentMethod = "card"
)

type PaymentRecord struct {
	ID               uuid.UUID     `json:"id"`
	ReceiptNumber    string        `json:"receipt_number"`
	ServiceRequestID *uuid.UUID    `json:"service_request_id,omitempty"`
	BidID            *uuid.UUID    `json:"bid_id,omitempty"`
	PayerID          uuid.UUID     `json:"payer_id"`
	Purpose          string        `json:"purpose"`
	Amount           float64       `json:"amount"`
	GST              float64       `json:"gst"`
	Method           PaymentMethod `json:"method"`
	Status           PaymentStatus `json:"status"`
	PaidAt           time.Time     `json:"paid_at"`
}

// FeeComponent is one slice of the AR fee structure. Share percentages are
// computed against the total of all components; a zero total yields zero
// shares rather than NaN.
type FeeComponent struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type FeeBreakdown struct {
	Component FeeComponent `json:"component"`
	Share     float64      `json:"share"`
}
