package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

type MenuRepository struct {
	db DB
}

func NewMenuRepository(db DB) *MenuRepository {
	return &MenuRepository{db: db}
}

var _ interfaces.MenuRepository = (*MenuRepository)(nil)

const menuColumns = `id, category, name, description, price, available`

func scanMenuItem(row Row) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.Category, &item.Name, &item.Description, &item.Price, &item.Available)
	return item, err
}

func (r *MenuRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM menu_items ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *MenuRepository) ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE category = $1 ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func (r *MenuRepository) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func collectMenuItems(rows Rows) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *MenuRepository) FindByID(ctx context.Context, itemID int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	return &item, nil
}

func (r *MenuRepository) FindByIDs(ctx context.Context, itemIDs []int) (map[int]domain.MenuItem, error) {
	items := make(map[int]domain.MenuItem, len(itemIDs))
	if len(itemIDs) == 0 {
		return items, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items[item.ID] = item
	}
	return items, rows.Err()
}

func (r *MenuRepository) SetAvailability(ctx context.Context, itemID int, available bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE menu_items SET available = $1 WHERE id = $2`, available, itemID)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepository) SetPrice(ctx context.Context, itemID int, price float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE menu_items SET price = $1 WHERE id = $2`, price, itemID)
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}
