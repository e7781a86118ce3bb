package skyview

import (
	"github.com/skyviewhq/skyview/internal/ports"
	"github.com/skyviewhq/skyview/internal/survey"
	"github.com/skyviewhq/skyview/pkg/log"
)

// Option configures optional behavior of a Client.
type Option func(*options)

// options holds the optional dependencies of a Client instance.
type options struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
	resolver   ports.NameResolver
	cutouts    ports.CutoutService
	catalog    *survey.Catalog
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: &log.NoopLogger{},
	}
}

// WithHTTPClient replaces the HTTP transport used by the resolver and
// the cutout fetcher. When set, Config.HTTPTimeout is ignored.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets the structured logger. The default discards all events.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResolver replaces the Sesame name resolver. The caller owns any
// caching behavior of the replacement.
func WithResolver(r NameResolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithCutoutService replaces the HTTP cutout fetcher.
func WithCutoutService(s CutoutService) Option {
	return func(o *options) {
		o.cutouts = s
	}
}

// WithSurveys replaces the built-in survey catalog. Surveys are tried in
// descending priority order regardless of argument order.
func WithSurveys(surveys ...Survey) Option {
	return func(o *options) {
		o.catalog = survey.New(surveys)
	}
}
