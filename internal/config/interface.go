package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it
	// into the format-agnostic model. Load does not validate cross-file
	// consistency; that is the validator's job, so that every violation
	// in the whole set can be reported together.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
