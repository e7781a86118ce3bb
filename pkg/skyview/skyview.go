package skyview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/skyviewhq/skyview/internal/adapters/httpfetch"
	"github.com/skyviewhq/skyview/internal/app"
	"github.com/skyviewhq/skyview/internal/cache"
	"github.com/skyviewhq/skyview/internal/domain"
	"github.com/skyviewhq/skyview/internal/ports"
	"github.com/skyviewhq/skyview/internal/resolver"
	"github.com/skyviewhq/skyview/internal/survey"
)

// Re-exported domain types so embedding applications need only this package.
type (
	// FetchResult is the per-target outcome of the pipeline.
	FetchResult = domain.FetchResult

	// Coordinate is an equatorial position in decimal degrees.
	Coordinate = domain.Coordinate

	// Survey describes one imaging backend.
	Survey = domain.Survey

	// Status is a terminal per-target pipeline state.
	Status = domain.Status

	// HTTPClient abstracts the HTTP transport for dependency injection.
	HTTPClient = ports.HTTPClient

	// NameResolver converts object names to coordinates.
	NameResolver = ports.NameResolver

	// CutoutService fetches one cutout from one survey backend.
	CutoutService = ports.CutoutService

	// Logger receives structured pipeline events.
	Logger = ports.Logger
)

// Per-target terminal statuses.
const (
	StatusSuccess          = domain.StatusSuccess
	StatusBlank            = domain.StatusBlank
	StatusExhausted        = domain.StatusExhausted
	StatusResolutionFailed = domain.StatusResolutionFailed
	StatusNetworkError     = domain.StatusNetworkError
)

// Sentinel errors surfaced by the public API.
var (
	ErrParseCoordinate = domain.ErrParseCoordinate
	ErrNameNotResolved = domain.ErrNameNotResolved
	ErrUnknownSurvey   = domain.ErrUnknownSurvey
	ErrInvalidConfig   = domain.ErrInvalidConfig
)

// SurveyAuto selects the full priority-ordered fallback chain.
const SurveyAuto = survey.Auto

// Config holds the client configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Survey is a catalog ID, or SurveyAuto for the full fallback chain.
	Survey string

	// FOV is the default field of view in arcminutes.
	FOV float64

	// Workers bounds batch concurrency.
	Workers int

	// CacheCapacity bounds the name-resolution LRU cache.
	CacheCapacity int

	// HTTPTimeout applies per network request made by the default HTTP
	// client. Ignored when WithHTTPClient supplies a client.
	HTTPTimeout time.Duration

	// BlankThreshold is the luminance standard deviation below which a
	// cutout counts as blank.
	BlankThreshold float64

	// ResolverURL overrides the Sesame endpoint; empty uses the default.
	ResolverURL string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Survey:         SurveyAuto,
		FOV:            1.0,
		Workers:        app.DefaultWorkers,
		CacheCapacity:  cache.DefaultCapacity,
		HTTPTimeout:    30 * time.Second,
		BlankThreshold: app.DefaultBlankThreshold,
	}
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.Survey == "" {
		c.Survey = d.Survey
	}
	if c.FOV == 0 {
		c.FOV = d.FOV
	}
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	if c.CacheCapacity == 0 {
		c.CacheCapacity = d.CacheCapacity
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = d.HTTPTimeout
	}
	if c.BlankThreshold == 0 {
		c.BlankThreshold = d.BlankThreshold
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.FOV < 0 {
		return fmt.Errorf("%w: fov must be positive", domain.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be positive", domain.ErrInvalidConfig)
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("%w: cache capacity must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// FetchOptions overrides per-call fetch parameters. Zero fields fall back
// to the client configuration.
type FetchOptions struct {
	Survey  string
	FOV     float64
	Workers int
}

// Client is the embeddable fetch pipeline. It is safe for concurrent use.
type Client struct {
	cfg     Config
	fetcher *app.Fetcher
	res     ports.NameResolver
	catalog *survey.Catalog
}

// New creates a client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	cat := o.catalog
	if cat == nil {
		cat = survey.Default()
	}
	if err := cat.Validate(cfg.Survey); err != nil {
		return nil, err
	}

	res := o.resolver
	if res == nil {
		names, err := cache.NewNames(cfg.CacheCapacity)
		if err != nil {
			return nil, err
		}
		res = resolver.NewSesame(httpClient, names, o.logger, cfg.ResolverURL)
	}

	cutouts := o.cutouts
	if cutouts == nil {
		cutouts = httpfetch.NewCutout(httpClient, o.logger)
	}

	return &Client{
		cfg:     cfg,
		fetcher: app.NewFetcher(res, cutouts, cat, o.logger, cfg.BlankThreshold),
		res:     res,
		catalog: cat,
	}, nil
}

// FetchOne resolves and fetches a single target. opts may be nil to use
// the client configuration. The error is non-nil only for configuration
// problems; per-target failures are reported in the result status.
func (c *Client) FetchOne(ctx context.Context, target string, opts *FetchOptions) (FetchResult, error) {
	return c.fetcher.FetchOne(ctx, target, c.merge(opts))
}

// FetchMany fetches every target with bounded concurrency. The returned
// slice is index-aligned with the input; a failing target occupies its
// slot rather than aborting the batch.
func (c *Client) FetchMany(ctx context.Context, targets []string, opts *FetchOptions) ([]FetchResult, error) {
	return c.fetcher.FetchMany(ctx, targets, c.merge(opts))
}

// Resolve converts an object name to a coordinate, bypassing the fetch
// pipeline. Results are served from the resolution cache when possible.
func (c *Client) Resolve(ctx context.Context, name string) (Coordinate, error) {
	return c.res.Resolve(ctx, name)
}

// Surveys returns the catalog descriptors in priority order.
func (c *Client) Surveys() []Survey {
	return c.catalog.All()
}

func (c *Client) merge(opts *FetchOptions) app.Options {
	out := app.Options{Survey: c.cfg.Survey, FOV: c.cfg.FOV, Workers: c.cfg.Workers}
	if opts == nil {
		return out
	}
	if opts.Survey != "" {
		out.Survey = opts.Survey
	}
	if opts.FOV != 0 {
		out.FOV = opts.FOV
	}
	if opts.Workers != 0 {
		out.Workers = opts.Workers
	}
	return out
}
