package ports

import (
	"context"

	"github.com/skyviewhq/skyview/internal/domain"
)

// NameResolver converts astronomical object names to equatorial
// coordinates. Implementations wrap a remote resolution service and are
// expected to cache results and retry transient failures internally.
type NameResolver interface {
	// Resolve returns the coordinate for an object name.
	// Returns domain.ErrNameNotResolved (possibly wrapped) when the
	// backend has no match or retries are exhausted.
	Resolve(ctx context.Context, name string) (domain.Coordinate, error)
}
