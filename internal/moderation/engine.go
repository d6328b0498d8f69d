// Package moderation holds the content lifecycle rules: which status
// transitions are legal, who may trigger them, and what a rejection must
// carry. The rules are pure so every branch is table-testable; persistence
// and atomicity live in the repository layer.
package moderation

import (
	"fmt"
	"strings"

	"github.com/termbridge/backend/internal/models"
)

// Engine decides the legality of lifecycle transitions.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// AuthorizeModerator gates approve/reject and the moderator-only dashboards.
// The error carries no hint of whether the target content exists.
func (e *Engine) AuthorizeModerator(p models.Principal) error {
	if p.Role != models.RoleAdmin {
		return fmt.Errorf("%w: moderator role required", models.ErrForbidden)
	}
	return nil
}

// AuthorizeEdit decides whether the principal may edit the given content.
// Only the author may edit, and APPROVED content is immutable even to its
// author; removing published content is an admin delete, not an edit.
func (e *Engine) AuthorizeEdit(content *models.Content, p models.Principal) error {
	if content.CreatedBy != p.UserID {
		return fmt.Errorf("%w: only the author can edit content", models.ErrForbidden)
	}
	if content.Status == models.StatusApproved {
		return models.ErrApprovedImmutable
	}
	return nil
}

// SubmitTransition returns the status after an author submission. A fresh
// submission and a resubmission after rejection are the same move: DRAFT or
// REJECTED becomes PENDING. Submitting content already in review is a no-op
// rather than an error so that "edit and submit" is idempotent on PENDING.
func (e *Engine) SubmitTransition(current models.ContentStatus) (models.ContentStatus, error) {
	switch current {
	case models.StatusDraft, models.StatusRejected, models.StatusPending:
		return models.StatusPending, nil
	default:
		return current, fmt.Errorf("%w: cannot submit %s content", models.ErrInvalidTransition, current)
	}
}

// DecisionTransition returns the status a moderation decision produces.
// Only PENDING content can be decided; DRAFT content has not been submitted
// and APPROVED/REJECTED content has already been decided.
func (e *Engine) DecisionTransition(current models.ContentStatus, decision models.ReviewDecision) (models.ContentStatus, error) {
	if current != models.StatusPending {
		return current, fmt.Errorf("%w: only PENDING content can be %s, got %s",
			models.ErrInvalidTransition, strings.ToLower(string(decision)), current)
	}
	switch decision {
	case models.DecisionApproved:
		return models.StatusApproved, nil
	case models.DecisionRejected:
		return models.StatusRejected, nil
	default:
		return current, fmt.Errorf("%w: unknown decision %q", models.ErrValidation, decision)
	}
}

// ValidateRejection enforces the closed reason set and the comment rule:
// reason must be one of models.RejectionReasons, and "Other" needs a
// non-blank comment explaining it.
func (e *Engine) ValidateRejection(reason string, comment *string) error {
	allowed := false
	for _, r := range models.RejectionReasons {
		if r == reason {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.ValidationError("invalid rejection reason %q", reason)
	}
	if reason == models.ReasonOther && (comment == nil || strings.TrimSpace(*comment) == "") {
		return models.ValidationError("comment is required when reason is %q", models.ReasonOther)
	}
	return nil
}
