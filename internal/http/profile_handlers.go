package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claritybiz/irp-platform/internal/http/middleware"
	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/service"
)

func (h *Handler) getProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	profile, completion, err := h.profiles.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"completion": completion,
	})
}

type createProfileRequest struct {
	Role   string         `json:"role" binding:"required"`
	Fields map[string]any `json:"fields"`
}

func (h *Handler) createProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), principal.UserID, model.ProfileRole(req.Role), req.Fields)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

type updateProfileRequest struct {
	Updates []service.FieldUpdate `json:"updates" binding:"required"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, completion, err := h.profiles.ApplyUpdates(c.Request.Context(), principal.UserID, req.Updates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"completion": completion,
	})
}

func (h *Handler) profileCompletion(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	_, completion, err := h.profiles.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, completion)
}
