package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/inventory/internal/formatter"
	"github.com/desertthunder/inventory/internal/models"
)

var _ list.Item = inventoryItem{}

// inventoryItem wraps [models.Item] to implement [list.Item].
type inventoryItem struct {
	item  models.Item
	price string
}

func newInventoryItem(item models.Item, c *formatter.Currency) inventoryItem {
	return inventoryItem{item: item, price: c.FormatPrice(item)}
}

func (i inventoryItem) FilterValue() string { return i.item.Name }
func (i inventoryItem) Title() string       { return i.item.Name }
func (i inventoryItem) Description() string {
	return fmt.Sprintf("%s • %s", i.price, formatter.InStockLabel(i.item.Quantity))
}

func toListItems(items []models.Item, c *formatter.Currency) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = newInventoryItem(item, c)
	}
	return out
}
