package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/termbridge/backend/internal/database"
	"github.com/termbridge/backend/internal/models"
)

type ContentRepository struct {
	db *database.DB
}

func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `
	c.id, c.title, c.term, c.body, c.category_id, c.created_by, c.status, c.created_at, c.updated_at,
	cat.id, cat.name, cat.slug, cat.description, cat.created_at
`

const contentJoin = `
	FROM content c
	JOIN categories cat ON cat.id = c.category_id
`

func scanContent(row interface{ Scan(...any) error }) (*models.Content, error) {
	content := &models.Content{Category: &models.Category{}}
	err := row.Scan(
		&content.ID,
		&content.Title,
		&content.Term,
		&content.Body,
		&content.CategoryID,
		&content.CreatedBy,
		&content.Status,
		&content.CreatedAt,
		&content.UpdatedAt,
		&content.Category.ID,
		&content.Category.Name,
		&content.Category.Slug,
		&content.Category.Description,
		&content.Category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// Create inserts a new content item
func (r *ContentRepository) Create(content *models.Content) error {
	query := `
		INSERT INTO content (id, title, term, body, category_id, created_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		content.ID,
		content.Title,
		content.Term,
		content.Body,
		content.CategoryID,
		content.CreatedBy,
		content.Status,
		content.CreatedAt,
		content.UpdatedAt,
	).Scan(&content.CreatedAt, &content.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	return nil
}

// GetByID retrieves a content item with its category
func (r *ContentRepository) GetByID(id uuid.UUID) (*models.Content, error) {
	query := `SELECT ` + contentColumns + contentJoin + ` WHERE c.id = $1`

	content, err := scanContent(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("content %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return content, nil
}

// Update rewrites the mutable fields of a content item, including status.
func (r *ContentRepository) Update(content *models.Content) error {
	query := `
		UPDATE content
		SET title = $1, term = $2, body = $3, category_id = $4, status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		content.Title,
		content.Term,
		content.Body,
		content.CategoryID,
		content.Status,
		content.ID,
	).Scan(&content.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("content %s: %w", content.ID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	return nil
}

// Delete hard-deletes a content item. Ledger entries are kept.
func (r *ContentRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("content %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// ListByStatus returns all content in the given status, newest first.
func (r *ContentRepository) ListByStatus(status models.ContentStatus) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + contentJoin + ` WHERE c.status = $1 ORDER BY c.created_at DESC`
	return r.list(query, status)
}

// ListByCreator returns all content authored by the user, newest first.
func (r *ContentRepository) ListByCreator(userID uuid.UUID) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + contentJoin + ` WHERE c.created_by = $1 ORDER BY c.created_at DESC`
	return r.list(query, userID)
}

func (r *ContentRepository) list(query string, arg any) ([]models.Content, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	contents := []models.Content{}
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, *content)
	}
	return contents, rows.Err()
}

// CountByStatus returns the number of items in the given status.
func (r *ContentRepository) CountByStatus(status models.ContentStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM content WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return count, nil
}

// Decide applies a moderation decision atomically: the status write is
// conditional on the item still being PENDING, and the ledger append commits
// in the same transaction. Exactly one of two concurrent decisions wins; the
// loser gets ErrInvalidTransition.
func (r *ContentRepository) Decide(contentID uuid.UUID, newStatus models.ContentStatus, review *models.ContentReview) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE content SET status = $1, updated_at = NOW() WHERE id = $2 AND status = 'PENDING'`,
		newStatus, contentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM content WHERE id = $1)`, contentID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check content: %w", err)
		}
		if !exists {
			return fmt.Errorf("content %s: %w", contentID, models.ErrNotFound)
		}
		return fmt.Errorf("content %s is no longer PENDING: %w", contentID, models.ErrInvalidTransition)
	}

	_, err = tx.Exec(
		`INSERT INTO content_reviews (id, content_id, decision, reason, comment, reviewed_by, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID, review.ContentID, review.Decision, review.Reason, review.Comment, review.ReviewedBy, review.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decision: %w", err)
	}

	return nil
}
