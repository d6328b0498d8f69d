package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a curated topic bucket for content. Categories are seeded by
// migration and looked up by slug; there is no runtime CRUD surface for them.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
