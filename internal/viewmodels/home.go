package viewmodels

import (
	"context"

	"github.com/desertthunder/inventory/internal/models"
)

// HomeUiState is the state of the item list.
type HomeUiState struct {
	ItemList []models.Item
	Err      error
}

// HomeViewModel exposes every item in the inventory.
type HomeViewModel struct {
	repo models.ItemsRepository
}

func NewHomeViewModel(repo models.ItemsRepository) *HomeViewModel {
	return &HomeViewModel{repo: repo}
}

// Watch emits the item list whenever the inventory changes. The channel closes when ctx is done.
func (vm *HomeViewModel) Watch(ctx context.Context) <-chan HomeUiState {
	out := make(chan HomeUiState)
	in := vm.repo.AllItemsStream(ctx)

	go func() {
		defer close(out)
		for snap := range in {
			select {
			case out <- HomeUiState{ItemList: snap.Items, Err: snap.Err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Snapshot returns the current item list.
func (vm *HomeViewModel) Snapshot(ctx context.Context) (HomeUiState, error) {
	state, err := first(ctx, vm.Watch)
	if err != nil {
		return HomeUiState{}, err
	}
	return state, state.Err
}
