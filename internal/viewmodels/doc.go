// package viewmodels holds the screen state for the inventory surfaces.
//
// Each view-model owns the state of one screen, converts repository streams into UI state, and validates form input
// before forwarding writes to a [models.ItemsRepository]. The TUI, CLI, and HTTP server all drive the same view-models.
package viewmodels
