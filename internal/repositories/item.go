package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/jmoiron/sqlx"
)

// ItemDAO maps [models.Item] to the items table.
type ItemDAO struct {
	db *sqlx.DB
}

// NewItemDAO creates a new ItemDAO with the given database connection
func NewItemDAO(db *sql.DB) *ItemDAO {
	return &ItemDAO{db: sqlx.NewDb(db, "sqlite3")}
}

// Insert adds item and returns its row ID.
//
// An item with ID 0 gets a generated ID. Conflicts on an explicit ID are ignored and reported as (0, nil).
func (d *ItemDAO) Insert(ctx context.Context, item models.Item) (int64, error) {
	query := `INSERT OR IGNORE INTO items (name, price, quantity) VALUES (:name, :price, :quantity)`
	if item.ID != 0 {
		query = `INSERT OR IGNORE INTO items (id, name, price, quantity) VALUES (:id, :name, :price, :quantity)`
	}

	result, err := d.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// Update overwrites the row whose primary key matches item.ID.
func (d *ItemDAO) Update(ctx context.Context, item models.Item) error {
	query := `UPDATE items SET name = :name, price = :price, quantity = :quantity WHERE id = :id`

	result, err := d.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	return requireRow(result, item.ID)
}

// Delete removes the row whose primary key matches item.ID.
func (d *ItemDAO) Delete(ctx context.Context, item models.Item) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, item.ID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return requireRow(result, item.ID)
}

// Sell decrements the quantity of the item by one in a single statement and returns the updated row.
//
// Returns [shared.ErrOutOfStock] when the quantity is already 0 and [shared.ErrItemNotFound] when no row has id.
func (d *ItemDAO) Sell(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item

	err := d.db.GetContext(ctx, &item,
		`UPDATE items SET quantity = quantity - 1 WHERE id = ? AND quantity > 0 RETURNING id, name, price, quantity`, id)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := d.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %d", shared.ErrOutOfStock, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sell item: %w", err)
	}

	return &item, nil
}

// Get retrieves an item by ID.
func (d *ItemDAO) Get(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item

	err := d.db.GetContext(ctx, &item, `SELECT id, name, price, quantity FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// List retrieves every item ordered by name.
func (d *ItemDAO) List(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}

	err := d.db.SelectContext(ctx, &items, `SELECT id, name, price, quantity FROM items ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	return items, nil
}

func requireRow(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
	}
	return nil
}
