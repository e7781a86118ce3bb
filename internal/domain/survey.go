package domain

// Endpoint styles understood by the cutout adapter. They select how the
// request query string is built from the survey descriptor.
const (
	// StyleLegacy is the legacysurvey.org viewer cutout API
	// (ra, dec, size, pixscale, layer).
	StyleLegacy = "legacy"

	// StyleFitscut is the STScI fitscut service used by PanSTARRS
	// (ra, dec, size, format, output_size, autoscale, filter).
	StyleFitscut = "fitscut"
)

// Survey describes one remote imaging backend: its cutout endpoint, pixel
// scale, size limits, approximate sky footprint, and fallback priority.
// A Survey is immutable after catalog construction.
type Survey struct {
	// ID is the short identifier used in requests (e.g. "ls-dr10").
	ID string

	// Style selects the query format used against BaseURL.
	// Empty means StyleLegacy.
	Style string

	// Bands lists the photometric bands available (informational).
	Bands string

	// BaseURL is the cutout endpoint for this survey.
	BaseURL string

	// PixScale is the default pixel scale in arcseconds per pixel.
	PixScale float64

	// DefaultSize is the cutout size in pixels when no field of view is given.
	DefaultSize int

	// MaxSize is the server-side cutout size limit in pixels.
	MaxSize int

	// Priority orders fallback attempts; higher is tried first.
	Priority int

	// MinDec and MaxDec bound the approximate declination coverage in degrees.
	MinDec float64
	MaxDec float64
}

// Covers reports whether a declination falls inside the survey's
// approximate footprint. The bounds are coarse and used only to skip
// surveys that cannot possibly have data at the position.
func (s Survey) Covers(dec float64) bool {
	return dec >= s.MinDec && dec <= s.MaxDec
}

// CutoutSize converts a field of view in arcminutes to a pixel size for
// this survey, clamped to the server limit. A non-positive fov yields the
// survey default.
func (s Survey) CutoutSize(fovArcmin float64) int {
	size := s.DefaultSize
	if fovArcmin > 0 {
		size = int(fovArcmin * 60 / s.PixScale)
	}
	if size > s.MaxSize {
		size = s.MaxSize
	}
	if size < 1 {
		size = 1
	}
	return size
}
