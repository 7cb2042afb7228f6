package model

import "errors"

// ErrNoProvider is returned by the provider factory when no text generation
// provider is configured. The orchestrator recovers it into a user-facing
// notice rather than failing the request.
var ErrNoProvider = errors.New("no text generation provider configured")
