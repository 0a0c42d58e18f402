package viewmodels

import (
	"context"

	"github.com/desertthunder/inventory/internal/models"
)

// ItemDetailsUiState is the state of the item detail screen.
//
// Found is false once the item no longer exists, e.g. after it was deleted elsewhere.
type ItemDetailsUiState struct {
	OutOfStock bool
	Details    models.ItemDetails
	Found      bool
	Err        error
}

// ItemDetailsViewModel shows one item and supports selling and deleting it.
type ItemDetailsViewModel struct {
	repo   models.ItemsRepository
	itemID int64
}

// NewItemDetailsViewModel creates a view-model for the item with the given ID.
func NewItemDetailsViewModel(repo models.ItemsRepository, itemID int64) (*ItemDetailsViewModel, error) {
	if err := requireID(itemID); err != nil {
		return nil, err
	}
	return &ItemDetailsViewModel{repo: repo, itemID: itemID}, nil
}

// ItemID returns the ID of the displayed item.
func (vm *ItemDetailsViewModel) ItemID() int64 { return vm.itemID }

// Watch emits the detail state whenever the item changes. The channel closes when ctx is done.
func (vm *ItemDetailsViewModel) Watch(ctx context.Context) <-chan ItemDetailsUiState {
	out := make(chan ItemDetailsUiState)
	in := vm.repo.ItemStream(ctx, vm.itemID)

	go func() {
		defer close(out)
		for snap := range in {
			select {
			case out <- detailsState(snap):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Snapshot returns the current detail state.
func (vm *ItemDetailsViewModel) Snapshot(ctx context.Context) (ItemDetailsUiState, error) {
	state, err := first(ctx, vm.Watch)
	if err != nil {
		return ItemDetailsUiState{}, err
	}
	return state, state.Err
}

// ReduceQuantityByOne sells one unit of the item and returns the updated item.
//
// Returns [shared.ErrOutOfStock] without writing when the quantity is already 0.
func (vm *ItemDetailsViewModel) ReduceQuantityByOne(ctx context.Context) (models.Item, error) {
	return vm.repo.SellItem(ctx, vm.itemID)
}

// DeleteItem removes the item.
func (vm *ItemDetailsViewModel) DeleteItem(ctx context.Context) error {
	return vm.repo.DeleteItem(ctx, models.Item{ID: vm.itemID})
}

func detailsState(snap models.ItemSnapshot) ItemDetailsUiState {
	if snap.Err != nil {
		return ItemDetailsUiState{Err: snap.Err}
	}
	if snap.Item == nil {
		return ItemDetailsUiState{OutOfStock: true}
	}
	return ItemDetailsUiState{
		OutOfStock: !snap.Item.InStock(),
		Details:    snap.Item.ToDetails(),
		Found:      true,
	}
}
