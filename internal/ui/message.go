package ui

import (
	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/viewmodels"
)

// itemsMsg carries one emission of the home stream. Emissions from a stream the model no longer holds are dropped.
type itemsMsg struct {
	stream <-chan viewmodels.HomeUiState
	state  viewmodels.HomeUiState
	closed bool
}

// detailsMsg carries one emission of the item details stream.
type detailsMsg struct {
	stream <-chan viewmodels.ItemDetailsUiState
	state  viewmodels.ItemDetailsUiState
	closed bool
}

// itemLoadedMsg reports that the edit form has been filled from the stored item.
type itemLoadedMsg struct {
	state models.ItemUiState
	err   error
}

type itemSavedMsg struct {
	id  int64
	err error
}

type itemSoldMsg struct {
	item models.Item
	err  error
}

type itemDeletedMsg struct {
	err error
}
