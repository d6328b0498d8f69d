package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewDecision is the outcome recorded by a moderation decision.
type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "APPROVED"
	DecisionRejected ReviewDecision = "REJECTED"
)

// Rejection reasons form a closed set. "Other" requires a free-text comment.
const (
	ReasonInaccurate    = "Inaccurate"
	ReasonInappropriate = "Inappropriate"
	ReasonPoorQuality   = "Poor Quality"
	ReasonOther         = "Other"
)

// RejectionReasons lists the allowed reasons in display order.
var RejectionReasons = []string{
	ReasonInaccurate,
	ReasonInappropriate,
	ReasonPoorQuality,
	ReasonOther,
}

// ContentReview is one entry in the append-only moderation ledger. A content
// item accumulates one entry per decision across resubmission cycles; entries
// are never updated or deleted.
type ContentReview struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	ContentID  uuid.UUID      `json:"content_id" db:"content_id"`
	Decision   ReviewDecision `json:"decision" db:"decision"`
	Reason     *string        `json:"reason,omitempty" db:"reason"`
	Comment    *string        `json:"comment,omitempty" db:"comment"`
	ReviewedBy uuid.UUID      `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt time.Time      `json:"reviewed_at" db:"reviewed_at"`
}

type RejectRequest struct {
	Reason  string  `json:"reason" binding:"required"`
	Comment *string `json:"comment,omitempty"`
}

// ModerationResponse is returned after a successful approve/reject.
type ModerationResponse struct {
	ContentID  uuid.UUID     `json:"content_id"`
	Status     ContentStatus `json:"status"`
	ReviewedBy string        `json:"reviewed_by"`
	ReviewedAt time.Time     `json:"reviewed_at"`
}

// ModerationEvent is broadcast over redis pub/sub and the admin websocket
// feed whenever content is submitted or decided.
type ModerationEvent struct {
	Type      string        `json:"type"` // content.submitted, content.approved, content.rejected
	ContentID uuid.UUID     `json:"content_id"`
	Title     string        `json:"title"`
	Status    ContentStatus `json:"status"`
	Actor     string        `json:"actor"`
	At        time.Time     `json:"at"`
}
