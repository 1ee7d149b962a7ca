package postgres

import (
	"context"
	"fmt"
)

// schema holds the bootstrap statements, applied in order at startup.
// Every statement is idempotent, so re-running on boot is safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id SERIAL PRIMARY KEY,
		category VARCHAR(50) NOT NULL,
		name VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT PRIMARY KEY,
		username VARCHAR(100) NOT NULL DEFAULT '',
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(20),
		email VARCHAR(255),
		loyalty_points INT NOT NULL DEFAULT 0,
		total_orders INT NOT NULL DEFAULT 0,
		preferences JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_addresses (
		id SERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		label VARCHAR(50) NOT NULL DEFAULT '',
		street VARCHAR(200) NOT NULL,
		city VARCHAR(100) NOT NULL,
		postal VARCHAR(20) NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	// At most one default address per user, enforced by the database
	// in addition to the repository transaction.
	`CREATE UNIQUE INDEX IF NOT EXISTS user_addresses_one_default
		ON user_addresses (user_id) WHERE is_default`,

	`CREATE TABLE IF NOT EXISTS user_favorites (
		user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		item_id INT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, item_id)
	)`,

	`CREATE TABLE IF NOT EXISTS carts (
		user_id BIGINT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
		subtotal NUMERIC(10,2) NOT NULL DEFAULT 0,
		discount NUMERIC(10,2) NOT NULL DEFAULT 0,
		promo_code VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		user_id BIGINT NOT NULL REFERENCES carts(user_id) ON DELETE CASCADE,
		item_id INT NOT NULL REFERENCES menu_items(id),
		quantity INT NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (user_id, item_id)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		subtotal NUMERIC(10,2) NOT NULL,
		discount NUMERIC(10,2) NOT NULL DEFAULT 0,
		delivery_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
		promo_code VARCHAR(50),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		delivery_address TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		item_id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		quantity INT NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS orders_user_idx ON orders (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		date VARCHAR(10) NOT NULL,
		time VARCHAR(5) NOT NULL,
		party_size INT NOT NULL CHECK (party_size > 0),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		special_requests TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT,
		order_id BIGINT REFERENCES orders(id),
		item_id INT REFERENCES menu_items(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS promo_codes (
		code VARCHAR(50) PRIMARY KEY,
		discount_type VARCHAR(20) NOT NULL,
		discount_value NUMERIC(10,2) NOT NULL,
		min_order NUMERIC(10,2) NOT NULL DEFAULT 0,
		max_uses INT,
		used_count INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		valid_from TIMESTAMPTZ,
		valid_until TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// seedMenu inserts the starter menu on an empty database.
var seedMenu = `
	INSERT INTO menu_items (id, category, name, description, price, available) VALUES
		(1, 'pizza', 'Margherita', 'Fresh tomato, mozzarella, basil', 12.00, TRUE),
		(2, 'pizza', 'Pepperoni', 'Pepperoni, mozzarella, tomato sauce', 14.00, TRUE),
		(3, 'pizza', 'Hawaiian', 'Ham, pineapple, mozzarella', 15.00, TRUE),
		(4, 'burgers', 'Classic Burger', 'Beef patty, lettuce, tomato, onion', 10.00, TRUE),
		(5, 'burgers', 'Cheese Burger', 'Beef patty, cheese, lettuce, tomato', 11.00, TRUE),
		(6, 'burgers', 'Veggie Burger', 'Plant-based patty, lettuce, tomato', 9.00, TRUE),
		(7, 'drinks', 'Coca Cola', 'Classic soft drink', 3.00, TRUE),
		(8, 'drinks', 'Coffee', 'Freshly brewed coffee', 4.00, TRUE),
		(9, 'drinks', 'Orange Juice', 'Freshly squeezed orange juice', 5.00, TRUE)
	ON CONFLICT (id) DO NOTHING`

// Bootstrap creates the schema and seeds the menu if empty.
func Bootstrap(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	if _, err := db.Exec(ctx, seedMenu); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}
	// Keep the sequence ahead of seeded ids.
	if _, err := db.Exec(ctx, `SELECT setval('menu_items_id_seq', (SELECT MAX(id) FROM menu_items))`); err != nil {
		return fmt.Errorf("failed to advance menu sequence: %w", err)
	}
	return nil
}
