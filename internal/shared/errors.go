package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrBackendUnavailable = fmt.Errorf("storage backend unavailable")
	ErrSchema             = fmt.Errorf("schema initialization failed")
	ErrCorruptRecord      = fmt.Errorf("corrupt record")
	ErrRecipeNotFound     = fmt.Errorf("recipe not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingUserID   = fmt.Errorf("missing user id")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
