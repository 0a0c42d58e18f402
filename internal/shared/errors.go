package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Persistence errors
	ErrDatabase       = fmt.Errorf("database error")
	ErrItemNotFound   = fmt.Errorf("item not found")
	ErrOutOfStock     = fmt.Errorf("item out of stock")
	ErrTimeout        = fmt.Errorf("operation timed out")
	ErrNoMigrations   = fmt.Errorf("no migrations to rollback")
	ErrServiceStopped = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
