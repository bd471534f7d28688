package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foodwise/foodwise/internal/model"
)

// Common errors for inventory repository operations.
var (
	ErrItemNotFound = errors.New("inventory item not found")
	ErrItemExists   = errors.New("inventory item already exists")
)

const itemColumns = "id, name, quantity, expiry_date, created_at"

// CreateItem inserts a new inventory item with its client-supplied ID.
func (r *Repository) CreateItem(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO food_inventory (id, name, quantity, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Quantity,
		item.ExpiryDate,
		item.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrItemExists
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetItemByID retrieves an inventory item by its ID.
func (r *Repository) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM food_inventory
		WHERE id = $1
	`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by ID: %w", err)
	}

	return item, nil
}

// ListItems retrieves all inventory items in insertion order.
func (r *Repository) ListItems(ctx context.Context) ([]*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM food_inventory
		ORDER BY created_at, id
	`

	return r.queryItems(ctx, query)
}

// UpdateItem replaces name, quantity and expiry date of an existing item.
func (r *Repository) UpdateItem(ctx context.Context, id int64, name string, quantity int, expiryDate model.Date) (*model.Item, error) {
	query := `
		UPDATE food_inventory
		SET name = $2, quantity = $3, expiry_date = $4
		WHERE id = $1
		RETURNING ` + itemColumns

	item, err := scanItem(r.pool.QueryRow(ctx, query, id, name, quantity, expiryDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// DeleteItem removes an inventory item by its ID.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM food_inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ListExpiredItems retrieves items whose expiry date is before the given day.
func (r *Repository) ListExpiredItems(ctx context.Context, today model.Date) ([]*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM food_inventory
		WHERE expiry_date < $1
		ORDER BY expiry_date, id
	`

	return r.queryItems(ctx, query, today)
}

// ListExpiringItems retrieves unexpired items expiring within the window
// ending `days` days after today.
func (r *Repository) ListExpiringItems(ctx context.Context, today model.Date, days int) ([]*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM food_inventory
		WHERE expiry_date >= $1 AND expiry_date <= $2
		ORDER BY expiry_date, id
	`

	return r.queryItems(ctx, query, today, today.AddDays(days))
}

// ListLowStockItems retrieves items at or below the quantity threshold.
func (r *Repository) ListLowStockItems(ctx context.Context, threshold int) ([]*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM food_inventory
		WHERE quantity <= $1
		ORDER BY quantity, id
	`

	return r.queryItems(ctx, query, threshold)
}

// queryItems runs a SELECT returning item rows and scans them all.
func (r *Repository) queryItems(ctx context.Context, query string, args ...any) ([]*model.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// scanItem scans a single item row.
func scanItem(row pgx.Row) (*model.Item, error) {
	var item model.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.ExpiryDate,
		&item.CreatedAt,
	)
	return &item, err
}
