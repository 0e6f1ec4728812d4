package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/http/middleware"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
	"github.com/claritybiz/irp-platform/internal/service"
)

type submitBidRequest struct {
	ServiceRequestID string              `json:"service_request_id" binding:"required"`
	Financials       model.BidFinancials `json:"financials" binding:"required"`
	DeliveryDate     string              `json:"delivery_date"`
	AdditionalInputs string              `json:"additional_inputs"`
	IsInvited        bool                `json:"is_invited"`
	Draft            bool                `json:"draft"`
}

func (h *Handler) submitBid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req submitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID, err := uuid.Parse(strings.TrimSpace(req.ServiceRequestID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_request_id"})
		return
	}

	input := service.SubmitBidInput{
		ServiceRequestID: requestID,
		Financials:       req.Financials,
		AdditionalInputs: req.AdditionalInputs,
		IsInvited:        req.IsInvited,
		Draft:            req.Draft,
	}
	if req.DeliveryDate != "" {
		if input.DeliveryDate, err = parseDate(req.DeliveryDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery_date"})
			return
		}
	}

	bid, err := h.bids.Submit(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

func (h *Handler) quoteBid(c *gin.Context) {
	fee, err := strconv.ParseFloat(c.Query("professional_fee"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid professional_fee"})
		return
	}
	reimbursements := 0.0
	if raw := c.Query("reimbursements"); raw != "" {
		if reimbursements, err = strconv.ParseFloat(raw, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reimbursements"})
			return
		}
	}

	fin, err := h.bids.Quote(fee, reimbursements)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"financials": fin})
}

func (h *Handler) listBids(c *gin.Context) {
	filter := repository.BidFilter{}
	if raw := c.Query("provider_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider_id"})
			return
		}
		filter.ProviderID = id
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		filter.Statuses = append(filter.Statuses, model.BidStatus(raw))
	}

	page, err := h.bids.List(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getBid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bid, err := h.bids.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bid":   bid,
		"badge": model.BadgeForBidStatus(bid.Status),
	})
}

func (h *Handler) updateBidFinancials(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var financials model.BidFinancials
	if err := c.ShouldBindJSON(&financials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.bids.UpdateFinancials(c.Request.Context(), principal, id, financials)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}

type negotiateRequest struct {
	Body  string   `json:"body"`
	Offer *float64 `json:"offer"`
}

func (h *Handler) negotiateBid(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req negotiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.bids.Negotiate(c.Request.Context(), principal, id, req.Body, req.Offer)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}

func (h *Handler) acceptBid(c *gin.Context) {
	h.bidAction(c, h.bids.Accept)
}

func (h *Handler) rejectBid(c *gin.Context) {
	h.bidAction(c, h.bids.Reject)
}

func (h *Handler) withdrawBid(c *gin.Context) {
	h.bidAction(c, h.bids.Withdraw)
}

func (h *Handler) bidAction(c *gin.Context, action func(context.Context, model.Principal, uuid.UUID) (*model.Bid, error)) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	bid, err := action(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}

type confirmPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

func (h *Handler) confirmBidPayment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.bids.ConfirmPayment(c.Request.Context(), principal, id, model.PaymentMethod(req.Method))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
