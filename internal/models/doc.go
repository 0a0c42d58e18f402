// Package models defines the inventory domain types and the persistence contract.
//
// The package contains two categories of types:
//
// 1. Persistent entities
//   - [Item] : one inventory row (identity, name, price, quantity)
//
// 2. Form state used by view-models and screens
//   - [ItemDetails] : the user-entered text of an item form
//   - [ItemUiState] : form details plus the result of blank-field validation
//
// The [ItemsRepository] interface exposes reactive read streams (channels that re-emit after every committed write)
// and context-bound write operations.
package models
