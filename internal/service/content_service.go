// Package service implements the content facade: it orchestrates the content
// store, the review ledger and the moderation engine to carry out the
// draft/submit/edit/approve/reject/delete use cases. Side effects are
// confined to the backing stores; caching and event fan-out stay in the
// request layer.
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/termbridge/backend/internal/models"
	"github.com/termbridge/backend/internal/moderation"
)

// ContentStore is the persistence surface for content items. Implementations
// must return models.ErrNotFound for unknown ids, and Decide must perform the
// status re-check, status write and ledger append as one atomic unit.
type ContentStore interface {
	Create(content *models.Content) error
	GetByID(id uuid.UUID) (*models.Content, error)
	Update(content *models.Content) error
	Delete(id uuid.UUID) error
	ListByStatus(status models.ContentStatus) ([]models.Content, error)
	ListByCreator(userID uuid.UUID) ([]models.Content, error)
	CountByStatus(status models.ContentStatus) (int64, error)

	// Decide writes newStatus and appends review in one transaction,
	// conditional on the item still being PENDING. It returns
	// models.ErrNotFound if the item is gone and models.ErrInvalidTransition
	// if another decision won the race.
	Decide(contentID uuid.UUID, newStatus models.ContentStatus, review *models.ContentReview) error
}

// ReviewLedger is the read surface over the append-only review records.
type ReviewLedger interface {
	// LatestByContent returns the most recent review for the item, or
	// models.ErrNotFound when it has never been reviewed.
	LatestByContent(contentID uuid.UUID) (*models.ContentReview, error)
	// ListByReviewer returns this reviewer's records with the given decision,
	// most recent first.
	ListByReviewer(reviewerID uuid.UUID, decision models.ReviewDecision) ([]models.ContentReview, error)
	// ListByContent returns an item's full review history, most recent first.
	ListByContent(contentID uuid.UUID) ([]models.ContentReview, error)
}

// CategoryStore resolves category slugs.
type CategoryStore interface {
	GetBySlug(slug string) (*models.Category, error)
}

// ContentService is the facade the request layer talks to.
type ContentService struct {
	contents   ContentStore
	reviews    ReviewLedger
	categories CategoryStore
	engine     *moderation.Engine
}

func NewContentService(contents ContentStore, reviews ReviewLedger, categories CategoryStore, engine *moderation.Engine) *ContentService {
	return &ContentService{
		contents:   contents,
		reviews:    reviews,
		categories: categories,
		engine:     engine,
	}
}

// SaveDraft stores new content in DRAFT for later editing.
func (s *ContentService) SaveDraft(req models.ContentRequest, principal models.Principal) (*models.Content, error) {
	return s.createContent(req, principal, models.StatusDraft)
}

// SubmitForReview stores new content directly in PENDING.
func (s *ContentService) SubmitForReview(req models.ContentRequest, principal models.Principal) (*models.Content, error) {
	return s.createContent(req, principal, models.StatusPending)
}

func (s *ContentService) createContent(req models.ContentRequest, principal models.Principal, status models.ContentStatus) (*models.Content, error) {
	category, err := s.categories.GetBySlug(req.CategorySlug)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", req.CategorySlug, err)
	}

	now := time.Now()
	content := &models.Content{
		ID:         uuid.New(),
		Title:      req.Title,
		Term:       req.Term,
		Body:       req.Body,
		CategoryID: category.ID,
		Category:   category,
		CreatedBy:  principal.UserID,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err)
	}

	if err := s.contents.Create(content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return content, nil
}

// UpdateContent edits an existing item. Only the author may edit, APPROVED
// content is immutable, and a request with Submit set moves DRAFT/REJECTED
// content back into PENDING.
func (s *ContentService) UpdateContent(id uuid.UUID, req models.ContentRequest, principal models.Principal) (*models.Content, error) {
	content, err := s.contents.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.engine.AuthorizeEdit(content, principal); err != nil {
		return nil, err
	}

	category, err := s.categories.GetBySlug(req.CategorySlug)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", req.CategorySlug, err)
	}

	content.Title = req.Title
	content.Term = req.Term
	content.Body = req.Body
	content.CategoryID = category.ID
	content.Category = category

	if req.Submit {
		next, err := s.engine.SubmitTransition(content.Status)
		if err != nil {
			return nil, err
		}
		content.Status = next
	}

	content.UpdatedAt = time.Now()

	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err)
	}

	if err := s.contents.Update(content); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	return content, nil
}

// ApproveContent moves PENDING content to APPROVED and appends exactly one
// ledger entry. The role gate fires before the item is even looked up so a
// non-moderator cannot probe for existence.
func (s *ContentService) ApproveContent(id uuid.UUID, principal models.Principal) (*models.ModerationResponse, error) {
	if err := s.engine.AuthorizeModerator(principal); err != nil {
		return nil, err
	}
	return s.decide(id, principal, models.DecisionApproved, nil, nil)
}

// RejectContent moves PENDING content to REJECTED with a reason from the
// fixed set, appending one ledger entry.
func (s *ContentService) RejectContent(id uuid.UUID, req models.RejectRequest, principal models.Principal) (*models.ModerationResponse, error) {
	if err := s.engine.AuthorizeModerator(principal); err != nil {
		return nil, err
	}
	if err := s.engine.ValidateRejection(req.Reason, req.Comment); err != nil {
		return nil, err
	}
	reason := req.Reason
	return s.decide(id, principal, models.DecisionRejected, &reason, req.Comment)
}

func (s *ContentService) decide(id uuid.UUID, principal models.Principal, decision models.ReviewDecision, reason, comment *string) (*models.ModerationResponse, error) {
	content, err := s.contents.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStatus, err := s.engine.DecisionTransition(content.Status, decision)
	if err != nil {
		return nil, err
	}

	review := &models.ContentReview{
		ID:         uuid.New(),
		ContentID:  content.ID,
		Decision:   decision,
		Reason:     reason,
		Comment:    comment,
		ReviewedBy: principal.UserID,
		ReviewedAt: time.Now(),
	}

	// The store re-checks PENDING inside the same atomic unit that writes the
	// final status, so a concurrent decision loses here with
	// ErrInvalidTransition rather than double-applying.
	if err := s.contents.Decide(content.ID, newStatus, review); err != nil {
		return nil, err
	}

	return &models.ModerationResponse{
		ContentID:  content.ID,
		Status:     newStatus,
		ReviewedBy: principal.Email,
		ReviewedAt: review.ReviewedAt,
	}, nil
}

// DeleteContent removes an item unconditionally. The admin gate for this
// operation is enforced once, at the router, not re-derived here.
func (s *ContentService) DeleteContent(id uuid.UUID) error {
	return s.contents.Delete(id)
}

// GetApprovedContent returns the public catalog of approved items.
func (s *ContentService) GetApprovedContent() ([]models.ContentResponse, error) {
	return s.listByStatus(models.StatusApproved)
}

// GetPendingContent returns the moderation queue. Admin only.
func (s *ContentService) GetPendingContent(principal models.Principal) ([]models.ContentResponse, error) {
	if err := s.engine.AuthorizeModerator(principal); err != nil {
		return nil, err
	}
	return s.listByStatus(models.StatusPending)
}

func (s *ContentService) listByStatus(status models.ContentStatus) ([]models.ContentResponse, error) {
	contents, err := s.contents.ListByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s content: %w", status, err)
	}
	responses := make([]models.ContentResponse, 0, len(contents))
	for i := range contents {
		responses = append(responses, mapContentResponse(&contents[i]))
	}
	return responses, nil
}

// GetMySubmissions returns everything the principal has authored, across all
// statuses. Currently rejected items carry the latest rejection reason and
// comment from the ledger.
func (s *ContentService) GetMySubmissions(principal models.Principal) ([]models.ContentResponse, error) {
	contents, err := s.contents.ListByCreator(principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	responses := make([]models.ContentResponse, 0, len(contents))
	for i := range contents {
		resp := mapContentResponse(&contents[i])
		if contents[i].Status == models.StatusRejected {
			if review, err := s.reviews.LatestByContent(contents[i].ID); err == nil {
				resp.RejectionReason = review.Reason
				resp.RejectionComment = review.Comment
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// GetAdminStats returns the per-status counts for the dashboard. Admin only.
func (s *ContentService) GetAdminStats(principal models.Principal) (*models.AdminStats, error) {
	if err := s.engine.AuthorizeModerator(principal); err != nil {
		return nil, err
	}

	stats := &models.AdminStats{}
	var err error
	if stats.Pending, err = s.contents.CountByStatus(models.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending: %w", err)
	}
	if stats.Approved, err = s.contents.CountByStatus(models.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to count approved: %w", err)
	}
	if stats.Rejected, err = s.contents.CountByStatus(models.StatusRejected); err != nil {
		return nil, fmt.Errorf("failed to count rejected: %w", err)
	}
	return stats, nil
}

// GetReviewHistory returns the full audit trail for one item, most recent
// decision first. Admin only; the ledger includes reviewer identities.
func (s *ContentService) GetReviewHistory(id uuid.UUID, principal models.Principal) ([]models.ContentReview, error) {
	if err := s.engine.AuthorizeModerator(principal); err != nil {
		return nil, err
	}
	if _, err := s.contents.GetByID(id); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByContent(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list review history: %w", err)
	}
	return reviews, nil
}

// GetApprovedByAdmin lists the items this moderator approved, most recent
// decision first.
func (s *ContentService) GetApprovedByAdmin(principal models.Principal) ([]models.ContentResponse, error) {
	return s.listDecidedBy(principal, models.DecisionApproved)
}

// GetRejectedByAdmin lists the items this moderator rejected, most recent
// decision first.
func (s *ContentService) GetRejectedByAdmin(principal models.Principal) ([]models.ContentResponse, error) {
	return s.listDecidedBy(principal, models.DecisionRejected)
}

func (s *ContentService) listDecidedBy(principal models.Principal, decision models.ReviewDecision) ([]models.ContentResponse, error) {
	if err := s.engine.AuthorizeModerator(principal); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByReviewer(principal.UserID, decision)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	seen := make(map[uuid.UUID]bool)
	responses := make([]models.ContentResponse, 0, len(reviews))
	for _, review := range reviews {
		if seen[review.ContentID] {
			continue
		}
		seen[review.ContentID] = true

		content, err := s.contents.GetByID(review.ContentID)
		if err != nil {
			// Deleted since the decision; the ledger entry outlives the item.
			continue
		}
		responses = append(responses, mapContentResponse(content))
	}
	return responses, nil
}

func mapContentResponse(c *models.Content) models.ContentResponse {
	resp := models.ContentResponse{
		ID:        c.ID,
		Title:     c.Title,
		Term:      c.Term,
		Body:      c.Body,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Category != nil {
		resp.CategoryName = c.Category.Name
		resp.CategorySlug = c.Category.Slug
		resp.CategoryDescription = c.Category.Description
	}
	return resp
}
