package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/inventory/internal/shared"
)

// Route names a screen.
type Route string

const (
	HomeRoute        Route = "home"
	ItemEntryRoute   Route = "item_entry"
	ItemDetailsRoute Route = "item_details"
	ItemEditRoute    Route = "item_edit"
)

// Title returns the screen heading for the route.
func (r Route) Title() string {
	switch r {
	case HomeRoute:
		return "Inventory"
	case ItemEntryRoute:
		return "Add Item"
	case ItemDetailsRoute:
		return "Item Details"
	case ItemEditRoute:
		return "Edit Item"
	default:
		return string(r)
	}
}

// requiresItem reports whether the route takes an item ID argument.
func (r Route) requiresItem() bool {
	return r == ItemDetailsRoute || r == ItemEditRoute
}

// Destination is a route plus its item argument, if any.
type Destination struct {
	Route  Route
	ItemID int64
}

func Home() Destination                { return Destination{Route: HomeRoute} }
func ItemEntry() Destination           { return Destination{Route: ItemEntryRoute} }
func ItemDetails(id int64) Destination { return Destination{Route: ItemDetailsRoute, ItemID: id} }
func ItemEdit(id int64) Destination    { return Destination{Route: ItemEditRoute, ItemID: id} }

func (d Destination) String() string { return d.Path() }

// Path renders the destination as "route" or "route/{itemId}".
func (d Destination) Path() string {
	if d.Route.requiresItem() {
		return fmt.Sprintf("%s/%d", d.Route, d.ItemID)
	}
	return string(d.Route)
}

// ParseDestination is the inverse of [Destination.Path].
func ParseDestination(path string) (Destination, error) {
	name, arg, hasArg := strings.Cut(path, "/")
	route := Route(name)

	switch route {
	case HomeRoute, ItemEntryRoute:
		if hasArg {
			return Destination{}, fmt.Errorf("%w: %s takes no argument", shared.ErrInvalidArgument, route)
		}
		return Destination{Route: route}, nil
	case ItemDetailsRoute, ItemEditRoute:
		if !hasArg {
			return Destination{}, fmt.Errorf("%w: %s requires an item id", shared.ErrMissingArgument, route)
		}
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return Destination{}, fmt.Errorf("%w: item id %q", shared.ErrInvalidArgument, arg)
		}
		return Destination{Route: route, ItemID: id}, nil
	default:
		return Destination{}, fmt.Errorf("%w: unknown route %q", shared.ErrInvalidArgument, path)
	}
}

// Navigator is a back stack of destinations. The start destination is never popped.
type Navigator struct {
	stack []Destination
}

// NewNavigator creates a Navigator positioned at start.
func NewNavigator(start Destination) *Navigator {
	return &Navigator{stack: []Destination{start}}
}

// Current returns the destination on top of the stack.
func (n *Navigator) Current() Destination {
	return n.stack[len(n.stack)-1]
}

// Navigate pushes dest. Navigating to the current destination is a no-op.
func (n *Navigator) Navigate(dest Destination) {
	if n.Current() == dest {
		return
	}
	n.stack = append(n.stack, dest)
}

// PopBackStack removes the current destination and reports whether anything was popped.
func (n *Navigator) PopBackStack() bool {
	if len(n.stack) <= 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// NavigateUp returns to the previous screen.
func (n *Navigator) NavigateUp() bool {
	return n.PopBackStack()
}

// CanNavigateBack reports whether there is a previous screen.
func (n *Navigator) CanNavigateBack() bool {
	return len(n.stack) > 1
}

// Depth returns the number of destinations on the stack.
func (n *Navigator) Depth() int {
	return len(n.stack)
}
