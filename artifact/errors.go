package artifact

import "fmt"

var (
	// ErrNotFound is returned when no artifact exists for the given kind /
	// content hash pair.
	ErrNotFound = fmt.Errorf("artifact not found")
)
