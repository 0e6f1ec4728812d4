package http

import (
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

func (h *Handler) listProfessionals(c *gin.Context) {
	filter := repository.ProfessionalFilter{
		Specialization: c.Query("specialization"),
		Location:       c.Query("location"),
		Search:         c.Query("q"),
	}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating"})
			return
		}
		filter.MinRating = rating
	}

	page, err := h.invitations.ListProfessionals(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) listInvitations(c *gin.Context) {
	filter := repository.InvitationFilter{}
	if raw := c.Query("service_request_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_request_id"})
			return
		}
		filter.ServiceRequestID = id
	}
	if raw := c.Query("professional_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid professional_id"})
			return
		}
		filter.ProfessionalID = id
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		filter.Statuses = append(filter.Statuses, model.InvitationStatus(raw))
	}

	page, err := h.invitations.ListInvitations(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createInvitationRequest struct {
	ServiceRequestID string `json:"service_request_id" binding:"required"`
	ProfessionalID   string `json:"professional_id" binding:"required"`
	Message          string `json:"message"`
}

func (h *Handler) createInvitation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID, err := uuid.Parse(strings.TrimSpace(req.ServiceRequestID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_request_id"})
		return
	}
	professionalID, err := uuid.Parse(strings.TrimSpace(req.ProfessionalID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid professional_id"})
		return
	}

	invitation, err := h.invitations.Invite(c.Request.Context(), principal, requestID, professionalID, req.Message)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invitation)
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

func (h *Handler) respondInvitation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req respondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.invitations.Respond(c.Request.Context(), id, req.Accept)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitation)
}

func (h *Handler) listEntities(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	filter := repository.EntityFilter{Search: c.Query("q")}
	if !principal.IsSystemAdmin() {
		filter.OwnerID = principal.UserID
	}

	page, err := h.workspace.ListEntities(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getEntity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entity, err := h.workspace.GetEntity(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	badges := make(map[string]model.StatusBadge, len(entity.Modules))
	for _, module := range entity.Modules {
		badges[module.Code] = model.BadgeForModuleStatus(module.Status)
	}
	c.JSON(http.StatusOK, gin.H{"entity": entity, "module_badges": badges})
}

type addTeamMemberRequest struct {
	UserID      string                              `json:"user_id"`
	Name        string                              `json:"name" binding:"required"`
	Email       string                              `json:"email" binding:"required,email"`
	Permissions map[string][]model.ModulePermission `json:"permissions"`
}

func (h *Handler) addTeamMember(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	entityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req addTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.AddTeamMemberInput{
		Name:        req.Name,
		Email:       req.Email,
		Permissions: req.Permissions,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		input.UserID = userID
	} else {
		input.UserID = uuid.New()
	}

	entity, err := h.workspace.AddTeamMember(c.Request.Context(), principal, entityID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *Handler) setMemberPermissions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	entityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var permissions map[string][]model.ModulePermission
	if err := c.ShouldBindJSON(&permissions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity, err := h.workspace.SetMemberPermissions(c.Request.Context(), principal, entityID, userID, permissions)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

type requestSubscriptionRequest struct {
	ModuleCode string `json:"module_code" binding:"required"`
	ModuleName string `json:"module_name"`
}

func (h *Handler) requestSubscription(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	entityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req requestSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.workspace.RequestSubscription(c.Request.Context(), principal, entityID, req.ModuleCode, req.ModuleName)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

type activateSubscriptionRequest struct {
	Months int `json:"months"`
}

func (h *Handler) activateSubscription(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req activateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.workspace.ActivateSubscription(c.Request.Context(), principal, id, req.Months)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
