package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/termbridge/backend/internal/database"
	"github.com/termbridge/backend/internal/models"
)

// ReviewRepository reads the append-only moderation ledger. Writes happen
// only through ContentRepository.Decide so that a review never exists
// without its status change.
type ReviewRepository struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// LatestByContent returns the most recent review for a content item.
func (r *ReviewRepository) LatestByContent(contentID uuid.UUID) (*models.ContentReview, error) {
	query := `
		SELECT id, content_id, decision, reason, comment, reviewed_by, reviewed_at
		FROM content_reviews
		WHERE content_id = $1
		ORDER BY reviewed_at DESC
		LIMIT 1
	`

	review := &models.ContentReview{}
	err := r.db.QueryRow(query, contentID).Scan(
		&review.ID,
		&review.ContentID,
		&review.Decision,
		&review.Reason,
		&review.Comment,
		&review.ReviewedBy,
		&review.ReviewedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no reviews for content %s: %w", contentID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// ListByReviewer returns a moderator's decisions of the given kind, most
// recent first.
func (r *ReviewRepository) ListByReviewer(reviewerID uuid.UUID, decision models.ReviewDecision) ([]models.ContentReview, error) {
	query := `
		SELECT id, content_id, decision, reason, comment, reviewed_by, reviewed_at
		FROM content_reviews
		WHERE reviewed_by = $1 AND decision = $2
		ORDER BY reviewed_at DESC
	`

	rows, err := r.db.Query(query, reviewerID, decision)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.ContentReview{}
	for rows.Next() {
		var review models.ContentReview
		err := rows.Scan(
			&review.ID,
			&review.ContentID,
			&review.Decision,
			&review.Reason,
			&review.Comment,
			&review.ReviewedBy,
			&review.ReviewedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// ListByContent returns a content item's full review history, most recent
// first.
func (r *ReviewRepository) ListByContent(contentID uuid.UUID) ([]models.ContentReview, error) {
	query := `
		SELECT id, content_id, decision, reason, comment, reviewed_by, reviewed_at
		FROM content_reviews
		WHERE content_id = $1
		ORDER BY reviewed_at DESC
	`

	rows, err := r.db.Query(query, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.ContentReview{}
	for rows.Next() {
		var review models.ContentReview
		err := rows.Scan(
			&review.ID,
			&review.ContentID,
			&review.Decision,
			&review.Reason,
			&review.Comment,
			&review.ReviewedBy,
			&review.ReviewedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
