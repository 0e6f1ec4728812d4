package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

// amountTolerance absorbs paise-level rounding in fee components.
const amountTolerance = 0.01

type WorkOrderGenerator interface {
	Generate(doc model.WorkOrderDocument) ([]byte, error)
}

type BidService struct {
	bids       *repository.BidRepository
	requests   *repository.RequestRepository
	payments   *repository.PaymentRepository
	pdf        WorkOrderGenerator
	feePercent float64
	gstPercent float64
}

func NewBidService(
	bids *repository.BidRepository,
	requests *repository.RequestRepository,
	payments *repository.PaymentRepository,
	pdf WorkOrderGenerator,
	feePercent, gstPercent float64,
) *BidService {
	return &BidService{
		bids:       bids,
		requests:   requests,
		payments:   payments,
		pdf:        pdf,
		feePercent: feePercent,
		gstPercent: gstPercent,
	}
}

// Quote derives the platform fee and GST for a professional fee so the
// client can prefill bid financials. GST applies to fee plus platform fee.
func (s *BidService) Quote(professionalFee, reimbursements float64) (model.BidFinancials, error) {
	if professionalFee < 0 || reimbursements < 0 {
		return model.BidFinancials{}, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidInput)
	}

	platformFee := roundMoney(professionalFee * s.feePercent / 100)
	gst := roundMoney((professionalFee + platformFee) * s.gstPercent / 100)

	fin := model.BidFinancials{
		ProfessionalFee: professionalFee,
		PlatformFee:     platformFee,
		GST:             gst,
		Reimbursements:  reimbursements,
	}
	fin.TotalBidAmount = roundMoney(fin.ComponentSum())
	return fin, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

type SubmitBidInput struct {
	ServiceRequestID uuid.UUID           `validate:"required"`
	Financials       model.BidFinancials `validate:"required"`
	DeliveryDate     time.Time           `validate:"-"`
	AdditionalInputs string              `validate:"max=5000"`
	IsInvited        bool                `validate:"-"`
	Draft            bool                `validate:"-"`
}

func (s *BidService) Submit(ctx context.Context, principal model.Principal, input SubmitBidInput) (*model.Bid, error) {
	if !principal.IsProvider() {
		return nil, ErrPermissionDenied
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := checkFinancials(input.Financials); err != nil {
		return nil, err
	}

	req, err := s.requests.Get(ctx, input.ServiceRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch req.Status {
	case model.RequestStatusOpen, model.RequestStatusBidReceived, model.RequestStatusUnderNegotiation:
	default:
		return nil, fmt.Errorf("%w: request %s is not accepting bids", ErrInvalidTransition, req.SRNNumber)
	}

	status := model.BidStatusSubmitted
	if input.Draft {
		status = model.BidStatusDraft
	}

	bid, err := s.bids.Create(ctx, model.Bid{
		ServiceRequestID: input.ServiceRequestID,
		ProviderID:       principal.UserID,
		Financials:       input.Financials,
		DeliveryDate:     input.DeliveryDate,
		AdditionalInputs: input.AdditionalInputs,
		IsInvited:        input.IsInvited,
		Status:           status,
	})
	if err != nil {
		return nil, err
	}

	if status == model.BidStatusSubmitted && req.Status == model.RequestStatusOpen {
		_, err = s.requests.Update(ctx, req.ID, func(req *model.ServiceRequest) error {
			req.Status = model.RequestStatusBidReceived
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return bid, nil
}

func (s *BidService) Get(ctx context.Context, id uuid.UUID) (*model.Bid, error) {
	bid, err := s.bids.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bid, nil
}

func (s *BidService) List(ctx context.Context, filter repository.BidFilter, page repository.PageRequest) (repository.Page[model.Bid], error) {
	return s.bids.List(ctx, filter, page)
}

func (s *BidService) UpdateFinancials(ctx context.Context, principal model.Principal, id uuid.UUID, financials model.BidFinancials) (*model.Bid, error) {
	if err := checkFinancials(financials); err != nil {
		return nil, err
	}
	bid, err := s.bids.Update(ctx, id, func(bid *model.Bid) error {
		if bid.ProviderID != principal.UserID {
			return ErrPermissionDenied
		}
		switch bid.Status {
		case model.BidStatusDraft, model.BidStatusSubmitted, model.BidStatusNegotiating:
		default:
			return fmt.Errorf("%w: bid is %s", ErrInvalidTransition, bid.Status)
		}
		bid.Financials = financials
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bid, nil
}

// bidWithRequest loads a bid together with its request so callers can
// authorize against either side of the negotiation.
func (s *BidService) bidWithRequest(ctx context.Context, id uuid.UUID) (*model.Bid, *model.ServiceRequest, error) {
	bid, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	req, err := s.requests.Get(ctx, bid.ServiceRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return bid, req, nil
}

// Negotiate appends a message to the bid's negotiation thread and moves
// both sides into the negotiating state. Only the bid's provider and the
// request owner are parties to a negotiation.
func (s *BidService) Negotiate(ctx context.Context, principal model.Principal, id uuid.UUID, body string, offer *float64) (*model.Bid, error) {
	if body == "" && offer == nil {
		return nil, fmt.Errorf("%w: empty negotiation message", ErrInvalidInput)
	}
	current, req, err := s.bidWithRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ProviderID != principal.UserID && req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}

	bid, err := s.bids.Update(ctx, id, func(bid *model.Bid) error {
		switch bid.Status {
		case model.BidStatusSubmitted, model.BidStatusUnderReview, model.BidStatusNegotiating:
		default:
			return fmt.Errorf("%w: bid is %s", ErrInvalidTransition, bid.Status)
		}
		if bid.Negotiation == nil {
			bid.Negotiation = &model.NegotiationThread{OpenedAt: time.Now().UTC()}
		}
		bid.Negotiation.Messages = append(bid.Negotiation.Messages, model.NegotiationMessage{
			From:   principal.UserID,
			Body:   body,
			Offer:  offer,
			SentAt: time.Now().UTC(),
		})
		bid.Status = model.BidStatusNegotiating
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err = s.requests.Update(ctx, bid.ServiceRequestID, func(req *model.ServiceRequest) error {
		req.Status = model.RequestStatusUnderNegotiation
		return nil
	})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return bid, nil
}

// Accept marks the winning bid, rejects the open siblings, and moves the
// request to bid_accepted until the seeker pays the platform.
func (s *BidService) Accept(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Bid, error) {
	_, req, err := s.bidWithRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}

	bid, err := s.bids.Update(ctx, id, func(bid *model.Bid) error {
		switch bid.Status {
		case model.BidStatusSubmitted, model.BidStatusUnderReview, model.BidStatusNegotiating:
		default:
			return fmt.Errorf("%w: bid is %s", ErrInvalidTransition, bid.Status)
		}
		bid.Status = model.BidStatusAccepted
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	req, err = s.requests.Update(ctx, req.ID, func(req *model.ServiceRequest) error {
		req.Status = model.RequestStatusBidAccepted
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err = s.bids.UpdateWhere(ctx,
		func(sibling model.Bid) bool {
			return sibling.ServiceRequestID == req.ID && sibling.ID != bid.ID &&
				sibling.Status != model.BidStatusWithdrawn && sibling.Status != model.BidStatusExpired
		},
		func(sibling *model.Bid) { sibling.Status = model.BidStatusRejected })
	if err != nil {
		return nil, err
	}
	return bid, nil
}

// Reject is the seeker's call, so it authorizes against the request owner
// rather than the bid's provider.
func (s *BidService) Reject(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Bid, error) {
	_, req, err := s.bidWithRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.setTerminal(ctx, id, model.BidStatusRejected, func(bid model.Bid) error {
		return nil
	})
}

func (s *BidService) Withdraw(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Bid, error) {
	return s.setTerminal(ctx, id, model.BidStatusWithdrawn, func(bid model.Bid) error {
		if bid.ProviderID != principal.UserID {
			return ErrPermissionDenied
		}
		return nil
	})
}

func (s *BidService) setTerminal(ctx context.Context, id uuid.UUID, status model.BidStatus, check func(model.Bid) error) (*model.Bid, error) {
	bid, err := s.bids.Update(ctx, id, func(bid *model.Bid) error {
		if err := check(*bid); err != nil {
			return err
		}
		switch bid.Status {
		case model.BidStatusAccepted, model.BidStatusRejected, model.BidStatusWithdrawn, model.BidStatusExpired:
			return fmt.Errorf("%w: bid is already %s", ErrInvalidTransition, bid.Status)
		}
		bid.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bid, nil
}

type WorkOrderResult struct {
	Order    *model.WorkOrder
	FileName string
	PDF      []byte
}

// ConfirmPayment records the seeker's platform payment against an accepted
// bid and issues the work order with its printable PDF.
func (s *BidService) ConfirmPayment(ctx context.Context, principal model.Principal, bidID uuid.UUID, method model.PaymentMethod) (*WorkOrderResult, error) {
	bid, err := s.Get(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.Status != model.BidStatusAccepted {
		return nil, fmt.Errorf("%w: bid is %s, expected accepted", ErrInvalidTransition, bid.Status)
	}

	req, err := s.requests.Get(ctx, bid.ServiceRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.CreatedBy != principal.UserID && !principal.IsSystemAdmin() {
		return nil, ErrPermissionDenied
	}

	// The transition guards the whole flow: a second confirmation finds the
	// request already issued and stops before any payment or order exists.
	req, err = s.requests.Update(ctx, req.ID, func(req *model.ServiceRequest) error {
		if req.Status == model.RequestStatusWorkOrderIssued {
			return fmt.Errorf("%w: work order already issued for %s", ErrInvalidTransition, req.SRNNumber)
		}
		req.Status = model.RequestStatusWorkOrderIssued
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err = s.payments.Create(ctx, model.PaymentRecord{
		ServiceRequestID: &req.ID,
		BidID:            &bid.ID,
		PayerID:          principal.UserID,
		Purpose:          "Work order payment, " + req.SRNNumber,
		Amount:           bid.Financials.TotalBidAmount,
		GST:              bid.Financials.GST,
		Method:           method,
		Status:           model.PaymentStatusSuccess,
	})
	if err != nil {
		return nil, err
	}

	order, err := s.payments.CreateWorkOrder(ctx, model.WorkOrder{
		ServiceRequestID: req.ID,
		BidID:            bid.ID,
		ProviderID:       bid.ProviderID,
		SeekerID:         req.CreatedBy,
		Amount:           bid.Financials.TotalBidAmount,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(model.WorkOrderDocument{Order: *order, Request: *req, Bid: *bid})
	if err != nil {
		return nil, err
	}

	return &WorkOrderResult{
		Order:    order,
		FileName: fmt.Sprintf("work-order-%s.pdf", order.WONumber),
		PDF:      content,
	}, nil
}

func checkFinancials(f model.BidFinancials) error {
	if f.TotalBidAmount <= 0 {
		return fmt.Errorf("%w: total bid amount must be positive", ErrInvalidInput)
	}
	if math.Abs(f.ComponentSum()-f.TotalBidAmount) > amountTolerance {
		return fmt.Errorf("%w: components sum to %.2f, total is %.2f",
			ErrAmountMismatch, f.ComponentSum(), f.TotalBidAmount)
	}
	if f.PaymentStructure == model.PaymentMilestone {
		var milestoneSum float64
		for _, m := range f.Milestones {
			milestoneSum += m.Amount
		}
		if math.Abs(milestoneSum-f.ProfessionalFee) > amountTolerance {
			return fmt.Errorf("%w: milestones sum to %.2f, professional fee is %.2f",
				ErrAmountMismatch, milestoneSum, f.ProfessionalFee)
		}
	}
	return nil
}
