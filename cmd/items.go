package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/inventory/internal/formatter"
	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/desertthunder/inventory/internal/viewmodels"
	"github.com/urfave/cli/v3"
)

// ItemsList prints every item ordered by name.
func (r *Runner) ItemsList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	state, err := viewmodels.NewHomeViewModel(repo).Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	r.logger.Debug("listed items", "count", len(state.ItemList))

	if cmd.Bool("json") {
		return r.writeJSON(state.ItemList, cmd.Bool("pretty"))
	}

	c, err := r.priceFormatter(cmd)
	if err != nil {
		return err
	}
	return formatter.ItemTable(r.output, state.ItemList, c)
}

// ItemsShow prints one item.
func (r *Runner) ItemsShow(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	vm, err := viewmodels.NewItemDetailsViewModel(repo, cmd.Int64("id"))
	if err != nil {
		return err
	}

	state, err := vm.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load item: %w", err)
	}
	if !state.Found {
		return fmt.Errorf("%w: %d", shared.ErrItemNotFound, vm.ItemID())
	}

	item := state.Details.ToItem()
	if cmd.Bool("json") {
		return r.writeJSON(item, true)
	}

	c, err := r.priceFormatter(cmd)
	if err != nil {
		return err
	}
	return formatter.ItemDetail(r.output, item, c)
}

// ItemsAdd validates the flags as an entry form and inserts the item.
func (r *Runner) ItemsAdd(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	vm := viewmodels.NewItemEntryViewModel(repo)
	vm.UpdateUiState(models.ItemDetails{
		Name:     cmd.String("name"),
		Price:    cmd.String("price"),
		Quantity: cmd.String("quantity"),
	})

	id, err := vm.SaveItem(ctx)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	name := vm.UiState().Details.Name
	if id == 0 {
		r.logger.Warn("insert ignored", "name", name)
		return r.writePlain("Item %q was not added\n", name)
	}

	r.logger.Info("added item", "id", id, "name", name)
	return r.writePlain("✓ Added %s (id %d)\n", name, id)
}

// ItemsEdit overwrites the fields given as flags and keeps the rest.
func (r *Runner) ItemsEdit(ctx context.Context, cmd *cli.Command) error {
	if !cmd.IsSet("name") && !cmd.IsSet("price") && !cmd.IsSet("quantity") {
		return fmt.Errorf("%w: set at least one of --name, --price, --quantity", shared.ErrInvalidFlag)
	}

	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	vm, err := viewmodels.NewItemEditViewModel(repo, cmd.Int64("id"))
	if err != nil {
		return err
	}

	state, err := vm.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load item: %w", err)
	}

	details := state.Details
	if cmd.IsSet("name") {
		details.Name = cmd.String("name")
	}
	if cmd.IsSet("price") {
		details.Price = cmd.String("price")
	}
	if cmd.IsSet("quantity") {
		details.Quantity = cmd.String("quantity")
	}
	vm.UpdateUiState(details)

	if err := vm.UpdateItem(ctx); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.Info("updated item", "id", vm.ItemID())
	return r.writePlain("✓ Updated %s (id %d)\n", details.Name, vm.ItemID())
}

// ItemsSell reduces the item's quantity by one.
func (r *Runner) ItemsSell(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	vm, err := viewmodels.NewItemDetailsViewModel(repo, cmd.Int64("id"))
	if err != nil {
		return err
	}

	item, err := vm.ReduceQuantityByOne(ctx)
	if err != nil {
		return fmt.Errorf("failed to sell item: %w", err)
	}

	r.logger.Info("sold item", "id", item.ID, "remaining", item.Quantity)
	return r.writePlain("✓ Sold one %s, %s\n", item.Name, formatter.InStockLabel(item.Quantity))
}

// ItemsDelete removes the item.
func (r *Runner) ItemsDelete(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	vm, err := viewmodels.NewItemDetailsViewModel(repo, cmd.Int64("id"))
	if err != nil {
		return err
	}

	if err := vm.DeleteItem(ctx); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	r.logger.Info("deleted item", "id", vm.ItemID())
	return r.writePlain("✓ Deleted item %d\n", vm.ItemID())
}
