package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/claritybiz/irp-platform/internal/http/middleware"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
	"github.com/claritybiz/irp-platform/internal/service"
)

func (h *Handler) paymentFilter(c *gin.Context) (repository.PaymentFilter, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return repository.PaymentFilter{}, false
	}

	filter := repository.PaymentFilter{
		Method: model.PaymentMethod(c.Query("method")),
		Search: c.Query("q"),
	}
	if !principal.IsSystemAdmin() {
		filter.PayerID = principal.UserID
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		filter.Statuses = append(filter.Statuses, model.PaymentStatus(raw))
	}
	from, ok := optionalDate(c, "from")
	if !ok {
		return repository.PaymentFilter{}, false
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return repository.PaymentFilter{}, false
	}
	filter.From, filter.To = from, to
	return filter, true
}

func (h *Handler) paymentHistory(c *gin.Context) {
	filter, ok := h.paymentFilter(c)
	if !ok {
		return
	}
	page, err := h.payments.History(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) exportPayments(c *gin.Context) {
	filter, ok := h.paymentFilter(c)
	if !ok {
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	result, err := h.payments.Export(c.Request.Context(), filter, format)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

type feeBreakdownRequest struct {
	Components []model.FeeComponent `json:"components" binding:"required"`
}

func (h *Handler) feeBreakdown(c *gin.Context) {
	var req feeBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": service.FeeBreakdown(req.Components)})
}

type saveDraftRequest struct {
	Body json.RawMessage `json:"body" binding:"required"`
}

func (h *Handler) saveDraft(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), planID, principal.UserID, req.Body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) loadDraft(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}

	draft, err := h.drafts.Load(c.Request.Context(), planID, principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) discardDraft(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.drafts.Discard(c.Request.Context(), planID, principal.UserID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
