// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a stack of four screens, addressed by [Destination]:
//  1. [HomeRoute] : Browse every item in the inventory
//  2. [ItemEntryRoute] : Fill in and save a new item
//  3. [ItemDetailsRoute] : Inspect one item, sell a unit, or delete it
//  4. [ItemEditRoute] : Change an existing item
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Each screen is backed by a view-model from
// internal/viewmodels; list and detail screens hold a subscription to a repository stream and re-render whenever a
// write lands, whichever surface issued it.
//
// Navigation is a back stack managed by [Navigator]. Keyboard bindings are contextual and shown via charmbracelet/bubbles/help.
package ui
