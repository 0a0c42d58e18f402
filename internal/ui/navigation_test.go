package ui

import (
	"testing"

	"github.com/desertthunder/inventory/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator(t *testing.T) {
	t.Run("starts at start destination", func(t *testing.T) {
		nav := NewNavigator(Home())
		assert.Equal(t, Home(), nav.Current())
		assert.False(t, nav.CanNavigateBack())
	})

	t.Run("Navigate and PopBackStack", func(t *testing.T) {
		nav := NewNavigator(Home())
		nav.Navigate(ItemDetails(3))
		nav.Navigate(ItemEdit(3))

		assert.Equal(t, 3, nav.Depth())
		assert.Equal(t, ItemEdit(3), nav.Current())

		require.True(t, nav.PopBackStack())
		assert.Equal(t, ItemDetails(3), nav.Current())

		require.True(t, nav.NavigateUp())
		assert.Equal(t, Home(), nav.Current())
	})

	t.Run("never pops the start destination", func(t *testing.T) {
		nav := NewNavigator(Home())
		assert.False(t, nav.PopBackStack())
		assert.False(t, nav.NavigateUp())
		assert.Equal(t, Home(), nav.Current())
	})

	t.Run("navigating to the current destination is a no-op", func(t *testing.T) {
		nav := NewNavigator(Home())
		nav.Navigate(ItemEntry())
		nav.Navigate(ItemEntry())
		assert.Equal(t, 2, nav.Depth())
	})
}

func TestDestination(t *testing.T) {
	t.Run("Path", func(t *testing.T) {
		assert.Equal(t, "home", Home().Path())
		assert.Equal(t, "item_entry", ItemEntry().Path())
		assert.Equal(t, "item_details/7", ItemDetails(7).Path())
		assert.Equal(t, "item_edit/7", ItemEdit(7).String())
	})

	t.Run("ParseDestination round trips", func(t *testing.T) {
		for _, dest := range []Destination{Home(), ItemEntry(), ItemDetails(12), ItemEdit(4)} {
			got, err := ParseDestination(dest.Path())
			require.NoError(t, err)
			assert.Equal(t, dest, got)
		}
	})

	t.Run("ParseDestination errors", func(t *testing.T) {
		tests := []struct {
			path string
			want error
		}{
			{"item_details", shared.ErrMissingArgument},
			{"item_edit/abc", shared.ErrInvalidArgument},
			{"item_edit/0", shared.ErrInvalidArgument},
			{"home/1", shared.ErrInvalidArgument},
			{"settings", shared.ErrInvalidArgument},
		}

		for _, tt := range tests {
			_, err := ParseDestination(tt.path)
			assert.ErrorIs(t, err, tt.want, tt.path)
		}
	})

	t.Run("Title", func(t *testing.T) {
		assert.Equal(t, "Inventory", HomeRoute.Title())
		assert.Equal(t, "Add Item", ItemEntryRoute.Title())
		assert.Equal(t, "Item Details", ItemDetailsRoute.Title())
		assert.Equal(t, "Edit Item", ItemEditRoute.Title())
	})
}
