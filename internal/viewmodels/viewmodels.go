package viewmodels

import (
	"context"
	"fmt"

	"github.com/desertthunder/inventory/internal/shared"
)

// first returns the first value from a stream opened by open, then cancels the stream.
func first[T any](ctx context.Context, open func(ctx context.Context) <-chan T) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var zero T
	select {
	case v, ok := <-open(ctx):
		if !ok {
			return zero, shared.ErrServiceStopped
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func requireID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: item id must be positive, got %d", shared.ErrInvalidArgument, id)
	}
	return nil
}
