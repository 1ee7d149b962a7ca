package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ interfaces.OrderRepository = (*OrderRepository)(nil)

// CreateFromCheckout runs the whole checkout write set in one
// transaction: the cart row is locked first so a concurrent cart edit
// cannot interleave, then the order and its frozen lines are inserted,
// loyalty points and the lifetime order count are credited, and the
// cart is removed.
func (r *OrderRepository) CreateFromCheckout(ctx context.Context, order *domain.Order, loyaltyPoints int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT user_id FROM carts WHERE user_id = $1 FOR UPDATE`, order.UserID); err != nil {
		return fmt.Errorf("failed to lock cart: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, subtotal, discount, delivery_fee, promo_code, status, delivery_address, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		order.UserID, order.Subtotal, order.Discount, order.DeliveryFee,
		order.PromoCode, order.Status, order.DeliveryAddress, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, item_id, name, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			order.ID, item.ItemID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET loyalty_points = loyalty_points + $1, total_orders = total_orders + 1
		 WHERE user_id = $2`, loyaltyPoints, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to credit loyalty points: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, order.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit checkout: %w", err)
	}
	return nil
}

const orderColumns = `id, user_id, subtotal, discount, delivery_fee, promo_code, status, delivery_address, notes, created_at, updated_at`

func scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.UserID, &order.Subtotal, &order.Discount,
		&order.DeliveryFee, &order.PromoCode, &order.Status,
		&order.DeliveryAddress, &order.Notes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()
	return r.collectOrders(ctx, rows)
}

func (r *OrderRepository) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ANY($1) ORDER BY created_at`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()
	return r.collectOrders(ctx, rows)
}

func (r *OrderRepository) collectOrders(ctx context.Context, rows Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.Query(ctx,
		`SELECT item_id, name, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY id`,
		order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) DeliveredStats(ctx context.Context) (int, float64, error) {
	var count int
	var revenue float64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(subtotal + delivery_fee - discount), 0)
		 FROM orders WHERE status = $1`, domain.StatusDelivered).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute delivered stats: %w", err)
	}
	return count, revenue, nil
}
