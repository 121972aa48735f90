package config

import "context"

// Loader is the interface for a format-specific project loader.
type Loader interface {
	// Load reads project configuration from the given paths (files or
	// directories), translates it into the format-agnostic model, and
	// returns it. Later files merge into the same model; a second
	// milestones block is a load error.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
