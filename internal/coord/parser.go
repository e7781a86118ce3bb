// Package coord classifies and normalizes raw target tokens.
//
// A token is interpreted, in order, as a decimal-degree pair, a
// sexagesimal HMS/DMS pair, or an object name needing remote resolution.
// Parsing is pure: no I/O, no shared state.
package coord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyviewhq/skyview/internal/domain"
)

// Parse turns a raw input token into a Target.
//
// Recognized forms, tried in order:
//
//  1. Two numeric tokens in decimal degrees, space- or comma-separated:
//     "150.0 2.2", "150.0, 2.2".
//  2. Sexagesimal pair with hour-angle RA and signed DMS Dec:
//     "10:00:00 +02:12:00". A space-delimited six-token form
//     "10 00 00 +02 12 00" is accepted as well.
//  3. Anything else is an object name: "NGC 788", "M31".
//
// Numeric-looking input (forms 1 and 2) that fails range validation
// (RA outside [0, 360), Dec outside [-90, 90]) returns
// domain.ErrParseCoordinate rather than falling through to a name.
func Parse(raw string) (domain.Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Target{}, fmt.Errorf("%w: empty target", domain.ErrParseCoordinate)
	}

	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))

	if len(fields) == 2 {
		ra, errRA := strconv.ParseFloat(fields[0], 64)
		dec, errDec := strconv.ParseFloat(fields[1], 64)
		if errRA == nil && errDec == nil {
			c := domain.Coordinate{RA: ra, Dec: dec}
			if !c.Valid() {
				return domain.Target{}, fmt.Errorf("%w: %q out of range", domain.ErrParseCoordinate, s)
			}
			return domain.CoordTarget(s, c), nil
		}
		if strings.Contains(fields[0], ":") && strings.Contains(fields[1], ":") {
			c, err := parseSexagesimal(splitSexa(fields[0]), splitSexa(fields[1]))
			if err != nil {
				return domain.Target{}, fmt.Errorf("%w: %q: %v", domain.ErrParseCoordinate, s, err)
			}
			return domain.CoordTarget(s, c), nil
		}
	}

	// Space-delimited H M S D M S form.
	if len(fields) == 6 && allNumeric(fields) {
		c, err := parseSexagesimal(fields[:3], fields[3:])
		if err != nil {
			return domain.Target{}, fmt.Errorf("%w: %q: %v", domain.ErrParseCoordinate, s, err)
		}
		return domain.CoordTarget(s, c), nil
	}

	return domain.NameTarget(s), nil
}

// parseSexagesimal converts hour-angle RA components and signed DMS Dec
// components to a decimal-degree coordinate.
func parseSexagesimal(raParts, decParts []string) (domain.Coordinate, error) {
	hours, err := sexaValue(raParts)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("right ascension: %v", err)
	}
	dec, err := sexaValue(decParts)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("declination: %v", err)
	}

	c := domain.Coordinate{RA: hours * 15, Dec: dec}
	if !c.Valid() {
		return domain.Coordinate{}, fmt.Errorf("out of range")
	}
	return c, nil
}

// sexaValue combines two or three components (major, minutes, seconds)
// into a single value. The sign of the major component applies to the
// whole, so "-00:12:00" resolves to -0.2.
func sexaValue(parts []string) (float64, error) {
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("want 2 or 3 components, got %d", len(parts))
	}

	// The sign lives on the major component but applies to the whole
	// value, so parse the magnitude and negate the combined sum. A "-00"
	// major must still carry its sign.
	neg := strings.HasPrefix(parts[0], "-")
	magnitude := strings.TrimPrefix(strings.TrimPrefix(parts[0], "-"), "+")
	major, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return 0, err
	}
	if major < 0 {
		return 0, fmt.Errorf("malformed sign in %q", parts[0])
	}

	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, err
	}
	var seconds float64
	if len(parts) == 3 {
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, err
		}
	}
	if minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("minutes and seconds must be in [0, 60)")
	}

	v := major + minutes/60 + seconds/3600
	if neg {
		v = -v
	}
	return v, nil
}

func splitSexa(tok string) []string {
	return strings.Split(tok, ":")
}

func allNumeric(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}
