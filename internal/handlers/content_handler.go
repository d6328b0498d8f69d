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
	"github.com/termbridge/backend/internal/repository"
	"github.com/termbridge/backend/internal/service"
)

const approvedCacheTTL = 5 * time.Minute

// ContentHandler exposes the contributor-facing content operations. It
// resolves the principal, delegates to the service, and handles the cache
// and event side effects the facade deliberately stays out of.
type ContentHandler struct {
	svc          *service.ContentService
	categoryRepo *repository.CategoryRepository
	redis        *cache.RedisClient
	hub          *events.Hub
}

func NewContentHandler(svc *service.ContentService, categoryRepo *repository.CategoryRepository, redis *cache.RedisClient, hub *events.Hub) *ContentHandler {
	return &ContentHandler{svc: svc, categoryRepo: categoryRepo, redis: redis, hub: hub}
}

// SaveDraft stores new content as a draft
func (h *ContentHandler) SaveDraft(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.svc.SaveDraft(req, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, content)
}

// SubmitForReview stores new content directly into the moderation queue
func (h *ContentHandler) SubmitForReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.svc.SubmitForReview(req, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	h.publishEvent("content.submitted", content, principal.Email)
	c.JSON(http.StatusCreated, content)
}

// UpdateContent edits existing content; with submit=true it also (re)enters
// the moderation queue.
func (h *ContentHandler) UpdateContent(c *gin.Context) {
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

	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.svc.UpdateContent(id, req, principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	if req.Submit {
		h.publishEvent("content.submitted", content, principal.Email)
	}
	c.JSON(http.StatusOK, content)
}

// DeleteContent removes content outright. The admin gate lives on the route.
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid content id")
		return
	}

	if err := h.svc.DeleteContent(id); err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	h.invalidateApprovedCache()
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// GetApproved returns the public catalog, served from cache when warm.
func (h *ContentHandler) GetApproved(c *gin.Context) {
	if h.redis != nil {
		if contents, found, err := h.redis.GetApprovedContent(); err == nil && found {
			c.JSON(http.StatusOK, contents)
			return
		}
	}

	contents, err := h.svc.GetApprovedContent()
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	if h.redis != nil {
		_ = h.redis.SetApprovedContent(contents, approvedCacheTTL)
	}
	c.JSON(http.StatusOK, contents)
}

// GetMine returns everything the caller has authored
func (h *ContentHandler) GetMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	contents, err := h.svc.GetMySubmissions(principal)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, contents)
}

// GetCategories lists the categories contributors can file content under
func (h *ContentHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List()
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ContentHandler) publishEvent(eventType string, content *models.Content, actor string) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(models.ModerationEvent{
		Type:      eventType,
		ContentID: content.ID,
		Title:     content.Title,
		Status:    content.Status,
		Actor:     actor,
		At:        time.Now(),
	})
}

func (h *ContentHandler) invalidateApprovedCache() {
	if h.redis != nil {
		_ = h.redis.InvalidateApprovedContent()
	}
}
