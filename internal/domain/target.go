package domain

import "fmt"

// Coordinate is an equatorial position in decimal degrees (ICRS).
// RA is in [0, 360), Dec in [-90, 90].
type Coordinate struct {
	RA  float64
	Dec float64
}

// Valid reports whether the coordinate is within equatorial bounds.
func (c Coordinate) Valid() bool {
	return c.RA >= 0 && c.RA < 360 && c.Dec >= -90 && c.Dec <= 90
}

// String formats the coordinate as "(ra, dec)" with four decimal places,
// matching the label used for unnamed targets.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.RA, c.Dec)
}

// TargetKind discriminates the two variants of Target.
type TargetKind int

const (
	// TargetName means the target is an object name that needs remote resolution.
	TargetName TargetKind = iota

	// TargetCoordinate means the target parsed directly to a coordinate.
	TargetCoordinate
)

// Target is a single fetch target. It is a tagged union: either an object
// name awaiting resolution, or an already-parsed coordinate. Raw preserves
// the original input token for error reporting and output ordering.
type Target struct {
	Raw   string
	Kind  TargetKind
	Coord Coordinate // valid only when Kind == TargetCoordinate
}

// NameTarget builds a Target for an object name.
func NameTarget(raw string) Target {
	return Target{Raw: raw, Kind: TargetName}
}

// CoordTarget builds a Target for an already-known coordinate.
func CoordTarget(raw string, c Coordinate) Target {
	return Target{Raw: raw, Kind: TargetCoordinate, Coord: c}
}
