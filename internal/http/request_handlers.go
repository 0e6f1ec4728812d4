package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/http/middleware"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
	"github.com/claritybiz/irp-platform/internal/service"
)

func (h *Handler) listRequests(c *gin.Context) {
	filter := repository.RequestFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		filter.Statuses = append(filter.Statuses, model.ServiceRequestStatus(raw))
	}
	if raw := c.Query("created_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_by"})
			return
		}
		filter.CreatedBy = id
	}
	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return
	}
	filter.From, filter.To = from, to

	page, err := h.requests.List(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createRequestRequest struct {
	Title           string                    `json:"title" binding:"required"`
	Description     string                    `json:"description" binding:"required"`
	ServiceCategory []string                  `json:"service_category" binding:"required"`
	ServiceTypes    []string                  `json:"service_types" binding:"required"`
	ScopeOfWork     string                    `json:"scope_of_work"`
	BudgetRange     model.BudgetRange         `json:"budget_range"`
	BudgetNotAvail  bool                      `json:"budget_not_available"`
	Questionnaire   []model.QuestionnaireItem `json:"questionnaire"`
	WorkRequiredBy  string                    `json:"work_required_by"`
	Deadline        string                    `json:"deadline"`
	Submit          bool                      `json:"submit"`
}

func (h *Handler) createRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var workRequiredBy, deadline time.Time
	var err error
	if req.WorkRequiredBy != "" {
		if workRequiredBy, err = parseDate(req.WorkRequiredBy); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_required_by"})
			return
		}
	}
	if req.Deadline != "" {
		if deadline, err = parseDate(req.Deadline); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline"})
			return
		}
	}

	created, err := h.requests.Create(c.Request.Context(), principal, service.CreateRequestInput{
		Title:           req.Title,
		Description:     req.Description,
		ServiceCategory: req.ServiceCategory,
		ServiceTypes:    req.ServiceTypes,
		ScopeOfWork:     req.ScopeOfWork,
		BudgetRange:     req.BudgetRange,
		BudgetNotAvail:  req.BudgetNotAvail,
		Questionnaire:   req.Questionnaire,
		WorkRequiredBy:  workRequiredBy,
		Deadline:        deadline,
		SubmitNow:       req.Submit,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) requestStats(c *gin.Context) {
	stats, err := h.requests.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) getRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request": req,
		"badge":   model.BadgeForRequestStatus(req.Status),
	})
}

type updateRequestRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	ScopeOfWork *string            `json:"scope_of_work"`
	BudgetRange *model.BudgetRange `json:"budget_range"`
	Deadline    *string            `json:"deadline"`
}

func (h *Handler) updateRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateRequestInput{
		Title:       req.Title,
		Description: req.Description,
		ScopeOfWork: req.ScopeOfWork,
		BudgetRange: req.BudgetRange,
	}
	if req.Deadline != nil {
		deadline, err := parseDate(*req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline"})
			return
		}
		input.Deadline = &deadline
	}

	updated, err := h.requests.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) setRequestStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.requests.SetStatus(c.Request.Context(), principal, id, model.ServiceRequestStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) listRequestBids(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err := h.bids.List(c.Request.Context(), repository.BidFilter{ServiceRequestID: id}, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
