package postgres

import (
	"context"
	"fmt"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

var _ interfaces.ReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO reviews (user_id, rating, comment, order_id, item_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		review.UserID, review.Rating, review.Comment, review.OrderID, review.ItemID,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

const reviewColumns = `id, user_id, rating, comment, order_id, item_id, created_at`

func collectReviews(rows Rows) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(&review.ID, &review.UserID, &review.Rating,
			&review.Comment, &review.OrderID, &review.ItemID, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ListByItem(ctx context.Context, itemID int) ([]*domain.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE item_id = $1 ORDER BY created_at DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *ReviewRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *ReviewRepository) AverageForItem(ctx context.Context, itemID int) (float64, int, error) {
	var average float64
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE item_id = $1`,
		itemID).Scan(&average, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return average, count, nil
}
