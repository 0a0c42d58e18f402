package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
)

var _ models.ItemsRepository = (*OfflineItemsRepository)(nil)

// OfflineItemsRepository implements [models.ItemsRepository] over a local [ItemStore].
//
// Writes go straight to the store and, on success, wake every open stream.
type OfflineItemsRepository struct {
	store    ItemStore
	notifier *Notifier
	logger   *log.Logger
	timeout  time.Duration
}

// OfflineOpts configures an [OfflineItemsRepository].
type OfflineOpts struct {
	Logger  *log.Logger
	Timeout time.Duration // per-write deadline, defaults to [OperationTimeout]
}

// NewOfflineItemsRepository creates a repository that forwards to store.
func NewOfflineItemsRepository(store ItemStore, opts OfflineOpts) *OfflineItemsRepository {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Timeout == 0 {
		opts.Timeout = OperationTimeout
	}

	return &OfflineItemsRepository{
		store:    store,
		notifier: NewNotifier(),
		logger:   shared.WithLogger(opts.Logger, "component", "items"),
		timeout:  opts.Timeout,
	}
}

// AllItemsStream emits every item ordered by name, then again after each change.
func (r *OfflineItemsRepository) AllItemsStream(ctx context.Context) <-chan models.ItemsSnapshot {
	return watch(ctx, r.notifier, func(ctx context.Context) models.ItemsSnapshot {
		items, err := r.store.List(ctx)
		if err != nil {
			r.logger.Error("failed to list items", "error", err)
		}
		return models.ItemsSnapshot{Items: items, Err: err}
	})
}

// ItemStream emits the item with the given ID, then again after each change.
//
// A missing item is emitted as a snapshot with a nil Item and no error.
func (r *OfflineItemsRepository) ItemStream(ctx context.Context, id int64) <-chan models.ItemSnapshot {
	return watch(ctx, r.notifier, func(ctx context.Context) models.ItemSnapshot {
		item, err := r.store.Get(ctx, id)
		if errors.Is(err, shared.ErrItemNotFound) {
			return models.ItemSnapshot{}
		}
		if err != nil {
			r.logger.Error("failed to get item", "id", id, "error", err)
		}
		return models.ItemSnapshot{Item: item, Err: err}
	})
}

// InsertItem stores a new item and returns its ID (0 when the insert was ignored).
func (r *OfflineItemsRepository) InsertItem(ctx context.Context, item models.Item) (int64, error) {
	var id int64
	err := withTimeout(ctx, r.timeout, func(ctx context.Context) error {
		var err error
		id, err = r.store.Insert(ctx, item)
		return err
	})
	if err != nil {
		return 0, err
	}

	if id != 0 {
		r.logger.Debug("item inserted", "id", id, "name", item.Name)
		r.notifier.Publish()
	}
	return id, nil
}

// UpdateItem overwrites an existing item.
func (r *OfflineItemsRepository) UpdateItem(ctx context.Context, item models.Item) error {
	err := withTimeout(ctx, r.timeout, func(ctx context.Context) error {
		return r.store.Update(ctx, item)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("item updated", "id", item.ID)
	r.notifier.Publish()
	return nil
}

// DeleteItem removes an item by its ID.
func (r *OfflineItemsRepository) DeleteItem(ctx context.Context, item models.Item) error {
	err := withTimeout(ctx, r.timeout, func(ctx context.Context) error {
		return r.store.Delete(ctx, item)
	})
	if err != nil {
		return err
	}

	r.logger.Debug("item deleted", "id", item.ID)
	r.notifier.Publish()
	return nil
}

// SellItem reduces the stored quantity of the item by one and returns the updated item.
//
// The check and the decrement happen in the store, so concurrent sales never oversell or lose a decrement.
func (r *OfflineItemsRepository) SellItem(ctx context.Context, id int64) (models.Item, error) {
	var item *models.Item
	err := withTimeout(ctx, r.timeout, func(ctx context.Context) error {
		var err error
		item, err = r.store.Sell(ctx, id)
		return err
	})
	if err != nil {
		return models.Item{}, err
	}

	r.logger.Debug("item sold", "id", id, "remaining", item.Quantity)
	r.notifier.Publish()
	return *item, nil
}

// Subscribers returns the number of open streams.
func (r *OfflineItemsRepository) Subscribers() int {
	return r.notifier.Len()
}

// Close ends every open stream.
func (r *OfflineItemsRepository) Close() {
	r.notifier.Close()
}

// watch runs query once per change signal and forwards each result until ctx is done or n is closed.
//
// The subscription is taken before the first query so no write between them is missed.
func watch[T any](ctx context.Context, n *Notifier, query func(ctx context.Context) T) <-chan T {
	out := make(chan T)
	id, changes := n.Subscribe()

	go func() {
		defer close(out)
		defer n.Unsubscribe(id)

		for {
			value := query(ctx)
			if ctx.Err() != nil {
				return
			}

			select {
			case out <- value:
			case <-ctx.Done():
				return
			}

			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			}
		}
	}()

	return out
}
