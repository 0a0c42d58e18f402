// package models defines the data model for the inventory tracker
package models

import (
	"context"
	"strconv"
	"strings"
)

// Item is a single inventory record.
//
// An ID of 0 means the item has not been persisted; the database assigns one on insert.
type Item struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Quantity int     `db:"quantity" json:"quantity"`
}

// InStock reports whether at least one unit is available.
func (i Item) InStock() bool { return i.Quantity > 0 }

// ToDetails converts the item to its form representation.
func (i Item) ToDetails() ItemDetails {
	return ItemDetails{
		ID:       i.ID,
		Name:     i.Name,
		Price:    strconv.FormatFloat(i.Price, 'f', -1, 64),
		Quantity: strconv.Itoa(i.Quantity),
	}
}

// ToUiState wraps the item's details in an [ItemUiState].
func (i Item) ToUiState(isEntryValid bool) ItemUiState {
	return ItemUiState{Details: i.ToDetails(), IsEntryValid: isEntryValid}
}

// ItemDetails holds the raw text of an item form.
type ItemDetails struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"notblank"`
	Price    string `json:"price" validate:"notblank"`
	Quantity string `json:"quantity" validate:"notblank"`
}

// ToItem converts form text into an [Item].
//
// Unparseable price and quantity values become 0.
func (d ItemDetails) ToItem() Item {
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		price = 0
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil {
		quantity = 0
	}

	return Item{ID: d.ID, Name: d.Name, Price: price, Quantity: quantity}
}

// ItemUiState is the state of an entry or edit form.
type ItemUiState struct {
	Details      ItemDetails
	IsEntryValid bool
}

// ItemsSnapshot is one emission of [ItemsRepository.AllItemsStream].
type ItemsSnapshot struct {
	Items []Item
	Err   error
}

// ItemSnapshot is one emission of [ItemsRepository.ItemStream].
//
// Item is nil when no row has the requested ID.
type ItemSnapshot struct {
	Item *Item
	Err  error
}

// ItemsRepository is the persistence contract used by view-models.
//
// Streams emit the current value immediately, re-emit after every committed write,
// and are closed once ctx is done.
type ItemsRepository interface {
	AllItemsStream(ctx context.Context) <-chan ItemsSnapshot      // All items ordered by name
	ItemStream(ctx context.Context, id int64) <-chan ItemSnapshot // One item by primary key
	InsertItem(ctx context.Context, item Item) (int64, error)     // Insert, ignoring conflicts
	UpdateItem(ctx context.Context, item Item) error              // Update by primary key
	DeleteItem(ctx context.Context, item Item) error              // Delete by primary key
	SellItem(ctx context.Context, id int64) (Item, error)         // Decrement quantity by one while in stock
}
