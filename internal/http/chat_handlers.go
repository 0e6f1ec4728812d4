package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/http/middleware"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
	"github.com/claritybiz/irp-platform/internal/service"
)

func (h *Handler) listThreads(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	filter := repository.ThreadFilter{Search: c.Query("q")}
	if !principal.IsSystemAdmin() {
		filter.ParticipantID = principal.UserID
	}
	if raw := c.Query("service_request_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_request_id"})
			return
		}
		filter.ServiceRequestID = id
	}

	page, err := h.chat.ListThreads(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createThreadRequest struct {
	Subject          string `json:"subject" binding:"required"`
	ServiceRequestID string `json:"service_request_id"`
	Participants     []struct {
		UserID string `json:"user_id" binding:"required"`
		Name   string `json:"name"`
		Role   string `json:"role" binding:"required"`
	} `json:"participants" binding:"required"`
}

func (h *Handler) createThread(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateThreadInput{Subject: req.Subject}
	if req.ServiceRequestID != "" {
		id, err := uuid.Parse(strings.TrimSpace(req.ServiceRequestID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_request_id"})
			return
		}
		input.ServiceRequestID = &id
	}
	for _, p := range req.Participants {
		userID, err := uuid.Parse(strings.TrimSpace(p.UserID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant user_id"})
			return
		}
		input.Participants = append(input.Participants, model.ChatParticipant{
			UserID: userID,
			Name:   p.Name,
			Role:   model.ParticipantRole(p.Role),
		})
	}

	thread, err := h.chat.CreateThread(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func (h *Handler) getThread(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	thread, err := h.chat.GetThread(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

type sendMessageRequest struct {
	Body        string             `json:"body"`
	Type        string             `json:"type"`
	Attachments []model.Attachment `json:"attachments"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := h.chat.SendMessage(c.Request.Context(), principal, id, service.SendMessageInput{
		Body:        req.Body,
		Type:        model.MessageType(req.Type),
		Attachments: req.Attachments,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *Handler) markThreadRead(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	thread, err := h.chat.MarkRead(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}
