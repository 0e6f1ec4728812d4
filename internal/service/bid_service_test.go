package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

type stubWorkOrderPDF struct{}

func (stubWorkOrderPDF) Generate(model.WorkOrderDocument) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type bidFixture struct {
	svc      *BidService
	requests *repository.RequestRepository
	payments *repository.PaymentRepository
	request  *model.ServiceRequest
	seeker   model.Principal
	provider model.Principal
}

func newBidFixture(t *testing.T) *bidFixture {
	t.Helper()

	seq := repository.NewSequence()
	requests := repository.NewRequestRepository(seq)
	bids := repository.NewBidRepository(seq)
	payments := repository.NewPaymentRepository(seq)

	seeker := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}
	provider := model.Principal{UserID: uuid.New(), Role: model.RoleProvider}

	request, err := requests.Create(context.Background(), model.ServiceRequest{
		Title:     "CIRP process advisory",
		Status:    model.RequestStatusOpen,
		CreatedBy: seeker.UserID,
	})
	require.NoError(t, err)

	return &bidFixture{
		svc:      NewBidService(bids, requests, payments, stubWorkOrderPDF{}, 5, 18),
		requests: requests,
		payments: payments,
		request:  request,
		seeker:   seeker,
		provider: provider,
	}
}

func validFinancials() model.BidFinancials {
	return model.BidFinancials{
		ProfessionalFee:  90000,
		PlatformFee:      4500,
		GST:              17010,
		Reimbursements:   2500,
		TotalBidAmount:   114010,
		PaymentStructure: model.PaymentLumpSum,
	}
}

func TestSubmitBidMarksRequestBidReceived(t *testing.T) {
	f := newBidFixture(t)

	bid, err := f.svc.Submit(context.Background(), f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusSubmitted, bid.Status)
	assert.NotEmpty(t, bid.BidNumber)

	req, err := f.requests.Get(context.Background(), f.request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusBidReceived, req.Status)
}

func TestSubmitBidRejectsComponentMismatch(t *testing.T) {
	f := newBidFixture(t)

	fin := validFinancials()
	fin.TotalBidAmount = 120000

	_, err := f.svc.Submit(context.Background(), f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       fin,
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestSubmitBidRejectsMilestoneMismatch(t *testing.T) {
	f := newBidFixture(t)

	fin := validFinancials()
	fin.PaymentStructure = model.PaymentMilestone
	fin.Milestones = []model.Milestone{
		{Label: "Kickoff", Amount: 30000},
		{Label: "Final report", Amount: 50000},
	}

	_, err := f.svc.Submit(context.Background(), f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       fin,
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestSubmitBidSeekerForbidden(t *testing.T) {
	f := newBidFixture(t)

	_, err := f.svc.Submit(context.Background(), f.seeker, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAcceptBidRejectsSiblings(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	other := model.Principal{UserID: uuid.New(), Role: model.RoleProvider}
	second, err := f.svc.Submit(ctx, other, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	accepted, err := f.svc.Accept(ctx, f.seeker, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusAccepted, accepted.Status)

	sibling, err := f.svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusRejected, sibling.Status)

	req, err := f.requests.Get(ctx, f.request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusBidAccepted, req.Status)
}

func TestAcceptBidOnlyByRequestOwner(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}
	_, err = f.svc.Accept(ctx, stranger, bid.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRejectBidOnlyByRequestOwner(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	rival := model.Principal{UserID: uuid.New(), Role: model.RoleProvider}
	_, err = f.svc.Reject(ctx, rival, bid.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	unchanged, err := f.svc.Get(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusSubmitted, unchanged.Status)

	rejected, err := f.svc.Reject(ctx, f.seeker, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusRejected, rejected.Status)
}

func TestNegotiateBidOnlyByParties(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	outsider := model.Principal{UserID: uuid.New(), Role: model.RoleProvider}
	_, err = f.svc.Negotiate(ctx, outsider, bid.ID, "I can do it cheaper", nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	req, err := f.requests.Get(ctx, f.request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusBidReceived, req.Status)

	offer := 85000.0
	negotiated, err := f.svc.Negotiate(ctx, f.seeker, bid.ID, "Can you revise the fee?", &offer)
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusNegotiating, negotiated.Status)

	_, err = f.svc.Negotiate(ctx, f.provider, bid.ID, "Revised to 85000", &offer)
	require.NoError(t, err)
}

func TestConfirmPaymentIssuesWorkOrder(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, f.seeker, bid.ID)
	require.NoError(t, err)

	result, err := f.svc.ConfirmPayment(ctx, f.seeker, bid.ID, model.PaymentMethodUPI)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Order.WONumber)
	assert.Contains(t, result.FileName, result.Order.WONumber)
	assert.NotEmpty(t, result.PDF)

	req, err := f.requests.Get(ctx, f.request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusWorkOrderIssued, req.Status)

	payments, err := f.payments.List(ctx, repository.PaymentFilter{PayerID: f.seeker.UserID}, repository.PageRequest{})
	require.NoError(t, err)
	require.Len(t, payments.Data, 1)
	assert.Equal(t, validFinancials().TotalBidAmount, payments.Data[0].Amount)
	assert.Equal(t, model.PaymentStatusSuccess, payments.Data[0].Status)
}

func TestConfirmPaymentIsSingleShot(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, f.seeker, bid.ID)
	require.NoError(t, err)

	first, err := f.svc.ConfirmPayment(ctx, f.seeker, bid.ID, model.PaymentMethodUPI)
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, f.seeker, bid.ID, model.PaymentMethodUPI)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// one payment, one work order
	payments, err := f.payments.List(ctx, repository.PaymentFilter{PayerID: f.seeker.UserID}, repository.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, payments.Data, 1)

	orders, err := f.payments.ListWorkOrders(ctx, f.request.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, first.Order.WONumber, orders[0].WONumber)
}

func TestConfirmPaymentRequiresAcceptedBid(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, f.seeker, bid.ID, model.PaymentMethodUPI)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWithdrawBidOnlyByOwner(t *testing.T) {
	f := newBidFixture(t)
	ctx := context.Background()

	bid, err := f.svc.Submit(ctx, f.provider, SubmitBidInput{
		ServiceRequestID: f.request.ID,
		Financials:       validFinancials(),
	})
	require.NoError(t, err)

	other := model.Principal{UserID: uuid.New(), Role: model.RoleProvider}
	_, err = f.svc.Withdraw(ctx, other, bid.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	withdrawn, err := f.svc.Withdraw(ctx, f.provider, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BidStatusWithdrawn, withdrawn.Status)
}

func TestQuoteAppliesPlatformRates(t *testing.T) {
	f := newBidFixture(t)

	fin, err := f.svc.Quote(90000, 2500)
	require.NoError(t, err)
	assert.InDelta(t, 4500, fin.PlatformFee, 0.001)
	assert.InDelta(t, 17010, fin.GST, 0.001)
	assert.InDelta(t, 114010, fin.TotalBidAmount, 0.001)

	_, err = f.svc.Quote(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
