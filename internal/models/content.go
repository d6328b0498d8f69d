package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the lifecycle state of a content item.
type ContentStatus string

const (
	StatusDraft    ContentStatus = "DRAFT"
	StatusPending  ContentStatus = "PENDING"
	StatusApproved ContentStatus = "APPROVED"
	StatusRejected ContentStatus = "REJECTED"
)

// Valid reports whether s is one of the four lifecycle states.
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Content is a contributor-submitted educational item. CreatedBy is immutable
// after creation; Status only changes through the moderation engine or an
// author (re)submission.
type Content struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	Title      string        `json:"title" db:"title"`
	Term       string        `json:"term" db:"term"`
	Body       string        `json:"body" db:"body"`
	CategoryID uuid.UUID     `json:"category_id" db:"category_id"`
	Category   *Category     `json:"category,omitempty" db:"-"`
	CreatedBy  uuid.UUID     `json:"created_by" db:"created_by"`
	Status     ContentStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// Validate checks the invariants that hold for every stored content item.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(c.Term) == "" {
		return fmt.Errorf("term is required")
	}
	if strings.TrimSpace(c.Body) == "" {
		return fmt.Errorf("body is required")
	}
	if c.CategoryID == uuid.Nil {
		return fmt.Errorf("category is required")
	}
	if c.CreatedBy == uuid.Nil {
		return fmt.Errorf("created_by is required")
	}
	if !c.Status.Valid() {
		return fmt.Errorf("invalid status %q", c.Status)
	}
	return nil
}

type ContentRequest struct {
	Title        string `json:"title" binding:"required"`
	Term         string `json:"term" binding:"required"`
	Body         string `json:"body" binding:"required"`
	CategorySlug string `json:"category_slug" binding:"required"`
	Submit       bool   `json:"submit"`
}

// ContentResponse is the outward shape of a content item, with the category
// flattened and, for the owner's rejected items, the latest review verdict.
type ContentResponse struct {
	ID                  uuid.UUID     `json:"id"`
	Title               string        `json:"title"`
	Term                string        `json:"term"`
	Body                string        `json:"body"`
	CategoryName        string        `json:"category_name"`
	CategorySlug        string        `json:"category_slug"`
	CategoryDescription string        `json:"category_description"`
	Status              ContentStatus `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	RejectionReason     *string       `json:"rejection_reason,omitempty"`
	RejectionComment    *string       `json:"rejection_comment,omitempty"`
}

// AdminStats is the per-status breakdown shown on the moderation dashboard.
type AdminStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
