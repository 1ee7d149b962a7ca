package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ interfaces.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetOrCreate(ctx context.Context, userID int64, username, firstName string) (*domain.UserProfile, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (user_id, username, first_name) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET username = CASE WHEN EXCLUDED.username <> '' THEN EXCLUDED.username ELSE users.username END,
		     first_name = CASE WHEN EXCLUDED.first_name <> '' THEN EXCLUDED.first_name ELSE users.first_name END`,
		userID, username, firstName)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return r.Find(ctx, userID)
}

func (r *UserRepository) Find(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{Preferences: make(map[string]string)}

	err := r.db.QueryRow(ctx,
		`SELECT user_id, username, first_name, phone, email, loyalty_points, total_orders, preferences, created_at
		 FROM users WHERE user_id = $1`, userID,
	).Scan(&profile.UserID, &profile.Username, &profile.FirstName, &profile.Phone,
		&profile.Email, &profile.LoyaltyPoints, &profile.TotalOrders,
		&profile.Preferences, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := r.loadAddresses(ctx, profile); err != nil {
		return nil, err
	}
	if err := r.loadFavorites(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) loadAddresses(ctx context.Context, profile *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, label, street, city, postal, is_default
		 FROM user_addresses WHERE user_id = $1 ORDER BY id`, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(&addr.ID, &addr.Label, &addr.Street, &addr.City, &addr.Postal, &addr.IsDefault); err != nil {
			return fmt.Errorf("failed to scan address: %w", err)
		}
		profile.Addresses = append(profile.Addresses, addr)
	}
	return rows.Err()
}

func (r *UserRepository) loadFavorites(ctx context.Context, profile *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT item_id FROM user_favorites WHERE user_id = $1 ORDER BY item_id`, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID int
		if err := rows.Scan(&itemID); err != nil {
			return fmt.Errorf("failed to scan favorite: %w", err)
		}
		profile.Favorites = append(profile.Favorites, itemID)
	}
	return rows.Err()
}

func (r *UserRepository) UpdateContact(ctx context.Context, userID int64, phone, email *string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET phone = COALESCE($1, phone), email = COALESCE($2, email) WHERE user_id = $3`,
		phone, email, userID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetPreference(ctx context.Context, userID int64, key, value string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET preferences = jsonb_set(preferences, ARRAY[$1], to_jsonb($2::text)) WHERE user_id = $3`,
		key, value, userID)
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddAddress inserts the address inside a transaction. The first saved
// address always becomes the default; an explicit default demotes every
// other address before the insert so the partial unique index holds.
func (r *UserRepository) AddAddress(ctx context.Context, userID int64, address domain.Address) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_addresses WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}

	isDefault := address.IsDefault || existing == 0
	if isDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE user_addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
			return 0, fmt.Errorf("failed to clear default flag: %w", err)
		}
	}

	var addressID int
	err = tx.QueryRow(ctx,
		`INSERT INTO user_addresses (user_id, label, street, city, postal, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, address.Label, address.Street, address.City, address.Postal, isDefault,
	).Scan(&addressID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit address: %w", err)
	}
	return addressID, nil
}

func (r *UserRepository) DeleteAddress(ctx context.Context, userID int64, addressID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetDefaultAddress(ctx context.Context, userID int64, addressID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE user_addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear default flag: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE user_addresses SET is_default = TRUE WHERE id = $1 AND user_id = $2`,
		addressID, userID)
	if err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit default address: %w", err)
	}
	return nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID int64, itemID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_favorites (user_id, item_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID int64, itemID int) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
