package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/termbridge/backend/internal/cache"
	"github.com/termbridge/backend/internal/events"
	"github.com/termbridge/backend/internal/middleware"
	"github.com/termbridge/backend/internal/models"
	"github.com/termbridge/backend/internal/service"
)

// ModerationHandler exposes the admin review queue, the approve/reject
// decisions and the moderation dashboards. Role checks for these operations
// happen inside the service; this layer only resolves the principal.
type ModerationHandler struct {
	svc   *service.ContentService
	redis *cache.RedisClient
	hub   *events.Hub
}

func NewModerationHandler(svc *service.ContentService, redis *cache.RedisClient, hub *events.Hub) *ModerationHandler {
	return &ModerationHandler{svc: svc, redis: redis, hub: hub}
}

// GetPending returns the moderation queue
func (h *ModerationHandler) GetPending(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	contents, err := h.svc.GetPendingContent(principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, contents)
}

// Approve moves PENDING content to APPROVED
func (h *ModerationHandler) Approve(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid content id")
		return
	}

	resp, err := h.svc.ApproveContent(id, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	h.afterDecision("content.approved", resp)
	c.JSON(http.StatusOK, resp)
}

// Reject moves PENDING content to REJECTED with a reason
func (h *ModerationHandler) Reject(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid content id")
		return
	}

	var req models.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.svc.RejectContent(id, req, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	h.afterDecision("content.rejected", resp)
	c.JSON(http.StatusOK, resp)
}

// GetStats returns per-status content counts
func (h *ModerationHandler) GetStats(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	stats, err := h.svc.GetAdminStats(principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetApprovedByMe lists the items this moderator approved
func (h *ModerationHandler) GetApprovedByMe(c *gin.Context) {
	h.listDecided(c, (*service.ContentService).GetApprovedByAdmin)
}

// GetRejectedByMe lists the items this moderator rejected
func (h *ModerationHandler) GetRejectedByMe(c *gin.Context) {
	h.listDecided(c, (*service.ContentService).GetRejectedByAdmin)
}

func (h *ModerationHandler) listDecided(c *gin.Context, list func(*service.ContentService, models.Principal) ([]models.ContentResponse, error)) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	contents, err := list(h.svc, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, contents)
}

// GetReviewHistory returns the full audit trail for one content item
func (h *ModerationHandler) GetReviewHistory(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid content id")
		return
	}

	reviews, err := h.svc.GetReviewHistory(id, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ModerationHandler) afterDecision(eventType string, resp *models.ModerationResponse) {
	if h.redis != nil {
		_ = h.redis.InvalidateApprovedContent()
	}
	if h.hub != nil {
		h.hub.Publish(models.ModerationEvent{
			Type:      eventType,
			ContentID: resp.ContentID,
			Status:    resp.Status,
			Actor:     resp.ReviewedBy,
			At:        time.Now(),
		})
	}
}
