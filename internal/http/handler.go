package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/claritybiz/irp-platform/internal/repository"
	"github.com/claritybiz/irp-platform/internal/service"
)

type Handler struct {
	requests    *service.RequestService
	bids        *service.BidService
	chat        *service.ChatService
	invitations *service.InvitationService
	workspace   *service.WorkspaceService
	profiles    *service.ProfileService
	payments    *service.PaymentService
	drafts      *service.DraftService
	log         zerolog.Logger
}

func NewHandler(
	requests *service.RequestService,
	bids *service.BidService,
	chat *service.ChatService,
	invitations *service.InvitationService,
	workspace *service.WorkspaceService,
	profiles *service.ProfileService,
	payments *service.PaymentService,
	drafts *service.DraftService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		requests:    requests,
		bids:        bids,
		chat:        chat,
		invitations: invitations,
		workspace:   workspace,
		profiles:    profiles,
		payments:    payments,
		drafts:      drafts,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/service-requests", h.listRequests)
	protected.POST("/service-requests", h.createRequest)
	protected.GET("/service-requests/stats", h.requestStats)
	protected.GET("/service-requests/:id", h.getRequest)
	protected.PATCH("/service-requests/:id", h.updateRequest)
	protected.PUT("/service-requests/:id/status", h.setRequestStatus)
	protected.GET("/service-requests/:id/bids", h.listRequestBids)

	protected.POST("/bids", h.submitBid)
	protected.GET("/bids", h.listBids)
	protected.GET("/bids/quote", h.quoteBid)
	protected.GET("/bids/:id", h.getBid)
	protected.PUT("/bids/:id/financials", h.updateBidFinancials)
	protected.POST("/bids/:id/negotiate", h.negotiateBid)
	protected.POST("/bids/:id/accept", h.acceptBid)
	protected.POST("/bids/:id/reject", h.rejectBid)
	protected.POST("/bids/:id/withdraw", h.withdrawBid)
	protected.POST("/bids/:id/payment", h.confirmBidPayment)

	protected.GET("/chat/threads", h.listThreads)
	protected.POST("/chat/threads", h.createThread)
	protected.GET("/chat/threads/:id", h.getThread)
	protected.POST("/chat/threads/:id/messages", h.sendMessage)
	protected.POST("/chat/threads/:id/read", h.markThreadRead)

	protected.GET("/professionals", h.listProfessionals)
	protected.GET("/invitations", h.listInvitations)
	protected.POST("/invitations", h.createInvitation)
	protected.POST("/invitations/:id/respond", h.respondInvitation)

	protected.GET("/workspace/entities", h.listEntities)
	protected.GET("/workspace/entities/:id", h.getEntity)
	protected.POST("/workspace/entities/:id/team", h.addTeamMember)
	protected.PUT("/workspace/entities/:id/team/:userId/permissions", h.setMemberPermissions)
	protected.POST("/workspace/entities/:id/subscriptions", h.requestSubscription)
	protected.POST("/workspace/subscriptions/:id/activate", h.activateSubscription)

	protected.GET("/profile", h.getProfile)
	protected.POST("/profile", h.createProfile)
	protected.PATCH("/profile", h.updateProfile)
	protected.GET("/profile/completion", h.profileCompletion)

	protected.GET("/payments", h.paymentHistory)
	protected.GET("/payments/export", h.exportPayments)
	protected.POST("/payments/fee-breakdown", h.feeBreakdown)

	protected.PUT("/resolution-plans/:id/draft", h.saveDraft)
	protected.GET("/resolution-plans/:id/draft", h.loadDraft)
	protected.DELETE("/resolution-plans/:id/draft", h.discardDraft)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied), errors.Is(err, service.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAmountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func pageRequest(c *gin.Context) repository.PageRequest {
	var page repository.PageRequest
	_ = c.ShouldBindQuery(&page)
	return page
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func optionalDate(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := parseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return time.Time{}, false
	}
	return parsed, true
}
