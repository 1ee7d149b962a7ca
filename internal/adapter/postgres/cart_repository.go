package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

type CartRepository struct {
	db DB
}

func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{db: db}
}

var _ interfaces.CartRepository = (*CartRepository)(nil)

func (r *CartRepository) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart := domain.NewCart(userID)

	err := r.db.QueryRow(ctx,
		`SELECT subtotal, discount, promo_code, created_at FROM carts WHERE user_id = $1`,
		userID).Scan(&cart.Subtotal, &cart.Discount, &cart.PromoCode, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT item_id, quantity FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, quantity int
		if err := rows.Scan(&itemID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items[itemID] = quantity
	}
	return cart, rows.Err()
}

// Save replaces the stored cart with the given state in one transaction.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO carts (user_id, subtotal, discount, promo_code, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET subtotal = EXCLUDED.subtotal,
		     discount = EXCLUDED.discount,
		     promo_code = EXCLUDED.promo_code`,
		cart.UserID, cart.Subtotal, cart.Discount, cart.PromoCode, cart.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, cart.UserID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	for itemID, quantity := range cart.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO cart_items (user_id, item_id, quantity) VALUES ($1, $2, $3)`,
			cart.UserID, itemID, quantity)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *CartRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM carts WHERE EXISTS
			(SELECT 1 FROM cart_items WHERE cart_items.user_id = carts.user_id)`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count carts: %w", err)
	}
	return count, nil
}
