package models

import "testing"

func TestItemDetails(t *testing.T) {
	t.Run("ToItem", func(t *testing.T) {
		tc := []struct {
			name    string
			details ItemDetails
			want    Item
		}{
			{
				name:    "well formed",
				details: ItemDetails{ID: 3, Name: "Game", Price: "100.5", Quantity: "20"},
				want:    Item{ID: 3, Name: "Game", Price: 100.5, Quantity: 20},
			},
			{
				name:    "surrounding whitespace in numbers",
				details: ItemDetails{Name: "Pen", Price: " 2 ", Quantity: " 7\n"},
				want:    Item{Name: "Pen", Price: 2, Quantity: 7},
			},
			{
				name:    "unparseable price falls back to zero",
				details: ItemDetails{Name: "TV", Price: "cheap", Quantity: "5"},
				want:    Item{Name: "TV", Price: 0, Quantity: 5},
			},
			{
				name:    "fractional quantity falls back to zero",
				details: ItemDetails{Name: "TV", Price: "300", Quantity: "1.5"},
				want:    Item{Name: "TV", Price: 300, Quantity: 0},
			},
			{
				name:    "empty form",
				details: ItemDetails{},
				want:    Item{},
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.details.ToItem(); got != tt.want {
					t.Errorf("ToItem() = %+v, want %+v", got, tt.want)
				}
			})
		}
	})
}

func TestItem(t *testing.T) {
	t.Run("ToDetails", func(t *testing.T) {
		item := Item{ID: 1, Name: "Game", Price: 100, Quantity: 20}
		want := ItemDetails{ID: 1, Name: "Game", Price: "100", Quantity: "20"}

		if got := item.ToDetails(); got != want {
			t.Errorf("ToDetails() = %+v, want %+v", got, want)
		}
	})

	t.Run("ToDetails keeps fractional price", func(t *testing.T) {
		item := Item{Name: "Pen", Price: 2.75, Quantity: 1}

		if got := item.ToDetails().Price; got != "2.75" {
			t.Errorf("expected price 2.75, got %s", got)
		}
	})

	t.Run("Round trip through details", func(t *testing.T) {
		item := Item{ID: 9, Name: "Lamp", Price: 19.99, Quantity: 4}

		if got := item.ToDetails().ToItem(); got != item {
			t.Errorf("round trip = %+v, want %+v", got, item)
		}
	})

	t.Run("ToUiState", func(t *testing.T) {
		state := Item{ID: 2, Name: "Pen", Price: 1, Quantity: 0}.ToUiState(true)

		if !state.IsEntryValid {
			t.Error("expected entry to be valid")
		}
		if state.Details.Name != "Pen" {
			t.Errorf("expected name Pen, got %s", state.Details.Name)
		}
	})

	t.Run("InStock", func(t *testing.T) {
		if (Item{Quantity: 0}).InStock() {
			t.Error("zero quantity should be out of stock")
		}
		if (Item{Quantity: -1}).InStock() {
			t.Error("negative quantity should be out of stock")
		}
		if !(Item{Quantity: 1}).InStock() {
			t.Error("positive quantity should be in stock")
		}
	})
}
