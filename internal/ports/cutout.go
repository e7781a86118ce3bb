package ports

import (
	"context"

	"github.com/skyviewhq/skyview/internal/domain"
)

// CutoutService fetches a cutout image from a single survey backend.
// Implementations handle endpoint construction, transport, decoding, and
// per-request rate-limit retries. Fallback across surveys is the caller's
// concern.
type CutoutService interface {
	// FetchCutout requests a cutout centered on the coordinate with the
	// given field of view in arcminutes. The returned image carries both
	// the decoded luminance buffer and the original encoded bytes.
	FetchCutout(ctx context.Context, s domain.Survey, coord domain.Coordinate, fovArcmin float64) (*domain.Image, error)
}
