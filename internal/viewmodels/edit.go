package viewmodels

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/desertthunder/inventory/internal/validation"
)

// ItemEditViewModel holds the form for an existing item.
type ItemEditViewModel struct {
	repo   models.ItemsRepository
	itemID int64

	mu    sync.RWMutex
	state models.ItemUiState
}

// NewItemEditViewModel creates a view-model for editing the item with the given ID.
func NewItemEditViewModel(repo models.ItemsRepository, itemID int64) (*ItemEditViewModel, error) {
	if err := requireID(itemID); err != nil {
		return nil, err
	}
	return &ItemEditViewModel{repo: repo, itemID: itemID}, nil
}

// ItemID returns the ID of the edited item.
func (vm *ItemEditViewModel) ItemID() int64 { return vm.itemID }

// Load fills the form from the stored item.
func (vm *ItemEditViewModel) Load(ctx context.Context) (models.ItemUiState, error) {
	snap, err := first(ctx, func(ctx context.Context) <-chan models.ItemSnapshot {
		return vm.repo.ItemStream(ctx, vm.itemID)
	})
	if err != nil {
		return models.ItemUiState{}, err
	}
	if snap.Err != nil {
		return models.ItemUiState{}, snap.Err
	}
	if snap.Item == nil {
		return models.ItemUiState{}, fmt.Errorf("%w: %d", shared.ErrItemNotFound, vm.itemID)
	}

	details := snap.Item.ToDetails()
	return vm.UpdateUiState(details), nil
}

// UiState returns the current form state.
func (vm *ItemEditViewModel) UiState() models.ItemUiState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state
}

// UpdateUiState replaces the form contents and re-validates them. The item ID is fixed.
func (vm *ItemEditViewModel) UpdateUiState(details models.ItemDetails) models.ItemUiState {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	details.ID = vm.itemID
	vm.state = models.ItemUiState{Details: details, IsEntryValid: validation.IsValid(details)}
	return vm.state
}

// UpdateItem writes the form contents over the stored item. An invalid form is not written.
func (vm *ItemEditViewModel) UpdateItem(ctx context.Context) error {
	details := vm.UiState().Details
	details.ID = vm.itemID
	if err := validation.ValidateDetails(details); err != nil {
		return err
	}
	return vm.repo.UpdateItem(ctx, details.ToItem())
}
