// Package repositories implements SQLite persistence for inventory items.
//
// Key Implementations:
//   - [ItemDAO] : SQL statements for the items table, mapped with sqlx
//   - [Notifier] : fan-out of "items changed" signals to stream subscribers
//   - [OfflineItemsRepository] : [models.ItemsRepository] over the DAO, turning queries into streams
//
// Streams are channels. Each subscriber gets the current query result immediately and a fresh result after every
// committed write. Change signals are coalesced, so a slow reader sees the latest state rather than every intermediate one.
package repositories
