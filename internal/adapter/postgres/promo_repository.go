package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

type PromoRepository struct {
	db DB
}

func NewPromoRepository(db DB) *PromoRepository {
	return &PromoRepository{db: db}
}

var _ interfaces.PromoRepository = (*PromoRepository)(nil)

const uniqueViolation = "23505"

func (r *PromoRepository) Create(ctx context.Context, promo *domain.PromoCode) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO promo_codes (code, discount_type, discount_value, min_order, max_uses, is_active, valid_from, valid_until)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		promo.Code, promo.Type, promo.Value, promo.MinOrder,
		promo.MaxUses, promo.IsActive, promo.ValidFrom, promo.ValidUntil,
	).Scan(&promo.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicatePromoCode
		}
		return fmt.Errorf("failed to insert promo code: %w", err)
	}
	return nil
}

const promoColumns = `code, discount_type, discount_value, min_order, max_uses, used_count, is_active, valid_from, valid_until, created_at`

func scanPromo(row Row) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	err := row.Scan(&promo.Code, &promo.Type, &promo.Value, &promo.MinOrder,
		&promo.MaxUses, &promo.UsedCount, &promo.IsActive,
		&promo.ValidFrom, &promo.ValidUntil, &promo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoRepository) Find(ctx context.Context, code string) (*domain.PromoCode, error) {
	promo, err := scanPromo(r.db.QueryRow(ctx,
		`SELECT `+promoColumns+` FROM promo_codes WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}
	return promo, nil
}

func (r *PromoRepository) ListActive(ctx context.Context) ([]*domain.PromoCode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+promoColumns+` FROM promo_codes WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []*domain.PromoCode
	for rows.Next() {
		promo, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, promo)
	}
	return promos, rows.Err()
}

func (r *PromoRepository) SetActive(ctx context.Context, code string, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE promo_codes SET is_active = $1 WHERE code = $2`, active, code)
	if err != nil {
		return fmt.Errorf("failed to update promo code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PromoRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM promo_codes WHERE is_active`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count promo codes: %w", err)
	}
	return count, nil
}
