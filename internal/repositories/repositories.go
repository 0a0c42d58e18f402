// package repositories provides persistence layer implementations for inventory items.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
)

// OperationTimeout bounds each write issued through [OfflineItemsRepository].
const OperationTimeout = 5 * time.Second

// ItemStore is the data-access contract the offline repository forwards to.
//
// [ItemDAO] is the SQLite implementation.
type ItemStore interface {
	Insert(ctx context.Context, item models.Item) (int64, error)
	Update(ctx context.Context, item models.Item) error
	Delete(ctx context.Context, item models.Item) error
	Sell(ctx context.Context, id int64) (*models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
}

// withTimeout runs fn under a deadline and maps an expired deadline to [shared.ErrTimeout].
func withTimeout(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	if d <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	err := fn(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", shared.ErrTimeout, err)
	}
	return err
}
