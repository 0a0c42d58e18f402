package viewmodels

import (
	"context"
	"sync"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/validation"
)

// ItemEntryViewModel holds the form for a new item.
type ItemEntryViewModel struct {
	repo models.ItemsRepository

	mu    sync.RWMutex
	state models.ItemUiState
}

func NewItemEntryViewModel(repo models.ItemsRepository) *ItemEntryViewModel {
	return &ItemEntryViewModel{repo: repo}
}

// UiState returns the current form state.
func (vm *ItemEntryViewModel) UiState() models.ItemUiState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state
}

// UpdateUiState replaces the form contents and re-validates them.
func (vm *ItemEntryViewModel) UpdateUiState(details models.ItemDetails) models.ItemUiState {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.state = models.ItemUiState{Details: details, IsEntryValid: validation.IsValid(details)}
	return vm.state
}

// SaveItem inserts the form contents as a new item and returns its ID.
//
// An invalid form is not written; the returned [validation.ValidationErrors] matches [shared.ErrInvalidInput].
func (vm *ItemEntryViewModel) SaveItem(ctx context.Context) (int64, error) {
	details := vm.UiState().Details
	if err := validation.ValidateDetails(details); err != nil {
		return 0, err
	}

	item := details.ToItem()
	item.ID = 0
	return vm.repo.InsertItem(ctx, item)
}
