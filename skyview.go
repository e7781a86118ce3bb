// Package skyview fetches astronomical image cutouts from public sky
// surveys. It resolves object names through CDS Sesame, caches the
// results, and falls back through a priority-ordered survey chain until a
// non-blank cutout is found.
//
// Example usage:
//
//	client, err := skyview.New(skyview.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := client.FetchOne(context.Background(), "NGC 788", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.OK() {
//	    os.WriteFile("ngc788.jpg", res.Image.Encoded, 0o644)
//	}
//
// This package re-exports github.com/skyviewhq/skyview/pkg/skyview so the
// module path itself is importable; new code can also import the pkg path
// directly.
package skyview

import (
	"github.com/skyviewhq/skyview/pkg/skyview"
)

// Core pipeline types.
type (
	// Client is the embeddable fetch pipeline.
	Client = skyview.Client

	// Config holds the client configuration.
	Config = skyview.Config

	// FetchOptions overrides per-call fetch parameters.
	FetchOptions = skyview.FetchOptions

	// FetchResult is the per-target outcome of the pipeline.
	FetchResult = skyview.FetchResult

	// Coordinate is an equatorial position in decimal degrees.
	Coordinate = skyview.Coordinate

	// Survey describes one imaging backend.
	Survey = skyview.Survey

	// Status is a terminal per-target pipeline state.
	Status = skyview.Status

	// Option configures optional behavior of a Client.
	Option = skyview.Option
)

// Injection interfaces for custom transports and observers.
type (
	HTTPClient    = skyview.HTTPClient
	NameResolver  = skyview.NameResolver
	CutoutService = skyview.CutoutService
	Logger        = skyview.Logger
)

// Per-target terminal statuses.
const (
	StatusSuccess          = skyview.StatusSuccess
	StatusBlank            = skyview.StatusBlank
	StatusExhausted        = skyview.StatusExhausted
	StatusResolutionFailed = skyview.StatusResolutionFailed
	StatusNetworkError     = skyview.StatusNetworkError
)

// SurveyAuto selects the full priority-ordered fallback chain.
const SurveyAuto = skyview.SurveyAuto

// Sentinel errors surfaced by the public API.
var (
	ErrParseCoordinate = skyview.ErrParseCoordinate
	ErrNameNotResolved = skyview.ErrNameNotResolved
	ErrUnknownSurvey   = skyview.ErrUnknownSurvey
	ErrInvalidConfig   = skyview.ErrInvalidConfig
)

// New creates a client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	return skyview.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return skyview.DefaultConfig()
}

// Functional options, re-exported for root-path importers.
var (
	WithHTTPClient    = skyview.WithHTTPClient
	WithLogger        = skyview.WithLogger
	WithResolver      = skyview.WithResolver
	WithCutoutService = skyview.WithCutoutService
	WithSurveys       = skyview.WithSurveys
)
