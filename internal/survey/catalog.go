// Package survey holds the static registry of imaging backends and
// computes the per-target fallback attempt order.
package survey

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skyviewhq/skyview/internal/domain"
)

// Auto is the survey selector that enables the full fallback chain.
const Auto = "auto"

const legacyViewerURL = "https://www.legacysurvey.org/viewer/cutout.jpg"

// Candidate is one entry in a fallback attempt order. Covered is false
// only for an explicitly requested survey whose footprint does not include
// the target declination; the attempt is still made, the flag is for
// diagnostics.
type Candidate struct {
	Survey  domain.Survey
	Covered bool
}

// Catalog is an immutable, priority-ordered registry of surveys. Build it
// once at startup and share it read-only; it requires no synchronization.
type Catalog struct {
	ordered []domain.Survey
	byID    map[string]domain.Survey
}

// New builds a catalog from descriptors. Entries are ordered by descending
// priority; ties keep the given declaration order.
func New(surveys []domain.Survey) *Catalog {
	ordered := make([]domain.Survey, len(surveys))
	copy(ordered, surveys)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	byID := make(map[string]domain.Survey, len(ordered))
	for _, s := range ordered {
		byID[s.ID] = s
	}
	return &Catalog{ordered: ordered, byID: byID}
}

// Default returns the built-in catalog. Coverage bounds are approximate
// footprints used for quick filtering, not exact survey geometry.
func Default() *Catalog {
	return New([]domain.Survey{
		{ID: "ls-dr10", BaseURL: legacyViewerURL, PixScale: 0.262, DefaultSize: 256, MaxSize: 3000,
			Priority: 100, MinDec: -70, MaxDec: 90, Bands: "grz"},
		{ID: "ls-dr9", BaseURL: legacyViewerURL, PixScale: 0.262, DefaultSize: 256, MaxSize: 3000,
			Priority: 90, MinDec: -70, MaxDec: 90, Bands: "grz"},
		{ID: "panstarrs", Style: domain.StyleFitscut,
			BaseURL: "https://ps1images.stsci.edu/cgi-bin/fitscut.cgi", PixScale: 0.25, DefaultSize: 256,
			MaxSize: 1200, Priority: 80, MinDec: -30, MaxDec: 90, Bands: "grizy"},
		{ID: "sdss", BaseURL: legacyViewerURL, PixScale: 0.396, DefaultSize: 256, MaxSize: 3000,
			Priority: 70, MinDec: -20, MaxDec: 70, Bands: "ugriz"},
		{ID: "des-dr1", BaseURL: legacyViewerURL, PixScale: 0.262, DefaultSize: 256, MaxSize: 3000,
			Priority: 60, MinDec: -65, MaxDec: 5, Bands: "grizY"},
		{ID: "unwise-neo7", BaseURL: legacyViewerURL, PixScale: 2.75, DefaultSize: 256, MaxSize: 3000,
			Priority: 20, MinDec: -90, MaxDec: 90, Bands: "W1W2"},
		{ID: "galex", BaseURL: legacyViewerURL, PixScale: 1.5, DefaultSize: 256, MaxSize: 3000,
			Priority: 10, MinDec: -90, MaxDec: 90, Bands: "FUV/NUV"},
	})
}

// Lookup returns the descriptor for a survey ID.
func (c *Catalog) Lookup(id string) (domain.Survey, error) {
	s, ok := c.byID[strings.ToLower(id)]
	if !ok {
		return domain.Survey{}, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownSurvey, id, strings.Join(c.IDs(), ", "))
	}
	return s, nil
}

// Validate checks a survey selector before any work begins. Empty and
// Auto are always valid.
func (c *Catalog) Validate(requested string) error {
	if requested == "" || strings.EqualFold(requested, Auto) {
		return nil
	}
	_, err := c.Lookup(requested)
	return err
}

// Candidates returns the fallback attempt order for a coordinate.
//
// With an explicit requested survey, the chain is exactly that survey when
// its footprint covers the coordinate; when it does not, the survey is
// still tried first (flagged uncovered) followed by every remaining
// covered survey in priority order. With Auto or an empty selector, the
// chain is all covered surveys in priority order.
func (c *Catalog) Candidates(coord domain.Coordinate, requested string) ([]Candidate, error) {
	if requested != "" && !strings.EqualFold(requested, Auto) {
		s, err := c.Lookup(requested)
		if err != nil {
			return nil, err
		}
		if s.Covers(coord.Dec) {
			return []Candidate{{Survey: s, Covered: true}}, nil
		}
		out := []Candidate{{Survey: s, Covered: false}}
		for _, cand := range c.ordered {
			if cand.ID != s.ID && cand.Covers(coord.Dec) {
				out = append(out, Candidate{Survey: cand, Covered: true})
			}
		}
		return out, nil
	}

	var out []Candidate
	for _, s := range c.ordered {
		if s.Covers(coord.Dec) {
			out = append(out, Candidate{Survey: s, Covered: true})
		}
	}
	return out, nil
}

// All returns the surveys in priority order.
func (c *Catalog) All() []domain.Survey {
	out := make([]domain.Survey, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IDs returns the survey IDs in priority order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ordered))
	for i, s := range c.ordered {
		ids[i] = s.ID
	}
	return ids
}
