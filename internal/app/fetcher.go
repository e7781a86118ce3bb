// Package app contains the fetch pipeline: per-target survey fallback and
// the bounded-concurrency batch executor.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skyviewhq/skyview/internal/coord"
	"github.com/skyviewhq/skyview/internal/domain"
	"github.com/skyviewhq/skyview/internal/ports"
	"github.com/skyviewhq/skyview/internal/survey"
	"github.com/skyviewhq/skyview/pkg/log"
)

// DefaultBlankThreshold is the luminance standard deviation below which a
// cutout counts as blank. The value is a heuristic tuned against the
// legacysurvey viewer's out-of-footprint tiles; it is configurable, not a
// contract.
const DefaultBlankThreshold = 10.0

// Options are the per-call fetch parameters.
type Options struct {
	// Survey is a catalog ID, or "auto"/empty for the full fallback chain.
	Survey string

	// FOV is the requested field of view in arcminutes. Zero uses each
	// survey's default cutout size.
	FOV float64

	// Workers bounds batch concurrency. Zero means DefaultWorkers.
	// FetchOne ignores it.
	Workers int
}

// Fetcher resolves targets and walks the survey fallback chain for each.
// It is safe for concurrent use; the resolution cache inside the resolver
// is the only shared mutable state.
type Fetcher struct {
	resolver ports.NameResolver
	cutouts  ports.CutoutService
	catalog  *survey.Catalog
	logger   ports.Logger

	blankThreshold float64

	// retryDelay is the backoff before the single per-survey retry on a
	// transport error. Overridable in tests.
	retryDelay time.Duration
}

// NewFetcher wires a fetcher from its collaborators. A non-positive
// blankThreshold selects DefaultBlankThreshold.
func NewFetcher(resolver ports.NameResolver, cutouts ports.CutoutService, catalog *survey.Catalog, logger ports.Logger, blankThreshold float64) *Fetcher {
	if blankThreshold <= 0 {
		blankThreshold = DefaultBlankThreshold
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Fetcher{
		resolver:       resolver,
		cutouts:        cutouts,
		catalog:        catalog,
		logger:         logger,
		blankThreshold: blankThreshold,
		retryDelay:     DefaultBackoffInitial,
	}
}

// FetchOne runs the full pipeline for a single raw target token. The
// returned error is non-nil only for configuration problems (an unknown
// requested survey); every per-target failure is captured in the result's
// Status instead.
func (f *Fetcher) FetchOne(ctx context.Context, raw string, opts Options) (domain.FetchResult, error) {
	if err := f.catalog.Validate(opts.Survey); err != nil {
		return domain.FetchResult{}, err
	}
	return f.fetchOne(ctx, raw, opts), nil
}

// fetchOne assumes opts.Survey was validated.
func (f *Fetcher) fetchOne(ctx context.Context, raw string, opts Options) domain.FetchResult {
	target, c, err := f.resolveTarget(ctx, raw)
	if err != nil {
		f.logger.Warn("target resolution failed", log.String("target", raw), log.Err(err))
		return domain.FetchResult{Target: target, Status: domain.StatusResolutionFailed, Err: err}
	}

	cands, err := f.catalog.Candidates(c, opts.Survey)
	if err != nil {
		// Unreachable after Validate; recorded rather than dropped.
		return domain.FetchResult{Target: target, Coord: c, Status: domain.StatusResolutionFailed, Err: err}
	}
	if len(cands) == 0 {
		return domain.FetchResult{
			Target: target,
			Coord:  c,
			Status: domain.StatusExhausted,
			Err:    fmt.Errorf("%w: no survey covers dec %.2f", domain.ErrExhausted, c.Dec),
		}
	}

	var (
		lastErr     error
		netFailures int
		blankImg    *domain.Image
		blankSurvey string
	)

	for _, cand := range cands {
		if !cand.Covered {
			f.logger.Warn("requested survey does not cover target",
				log.String("survey", cand.Survey.ID),
				log.Float64("dec", c.Dec))
		}

		img, err := f.fetchWithRetry(ctx, cand.Survey, c, opts.FOV)
		if err != nil {
			f.logger.Debug("survey attempt failed",
				log.String("target", raw),
				log.String("survey", cand.Survey.ID),
				log.Err(err))
			if errors.Is(err, domain.ErrNetwork) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				netFailures++
			}
			lastErr = err
			continue
		}

		if sd := img.Stddev(); sd < f.blankThreshold {
			f.logger.Debug("blank cutout, falling back",
				log.String("target", raw),
				log.String("survey", cand.Survey.ID),
				log.Float64("stddev", sd))
			if blankImg == nil {
				blankImg = img
				blankSurvey = cand.Survey.ID
			}
			lastErr = fmt.Errorf("%w: %s stddev %.2f", domain.ErrBlankImage, cand.Survey.ID, sd)
			continue
		}

		f.logger.Info("cutout fetched",
			log.String("target", raw),
			log.String("survey", cand.Survey.ID))
		return domain.FetchResult{
			Target:     target,
			Coord:      c,
			SurveyUsed: cand.Survey.ID,
			Image:      img,
			Status:     domain.StatusSuccess,
		}
	}

	// Nothing usable. An explicitly requested survey with no fallback
	// chain reports its blank image as such; a chain where every attempt
	// died on the wire reports a network error; anything else is plain
	// exhaustion.
	if len(cands) == 1 && blankImg != nil && opts.Survey != "" && opts.Survey != survey.Auto {
		return domain.FetchResult{
			Target:     target,
			Coord:      c,
			SurveyUsed: blankSurvey,
			Image:      blankImg,
			Status:     domain.StatusBlank,
			Err:        lastErr,
		}
	}
	if netFailures == len(cands) {
		return domain.FetchResult{Target: target, Coord: c, Status: domain.StatusNetworkError, Err: lastErr}
	}
	return domain.FetchResult{
		Target: target,
		Coord:  c,
		Status: domain.StatusExhausted,
		Err:    fmt.Errorf("%w: %d candidates tried, last: %v", domain.ErrExhausted, len(cands), lastErr),
	}
}

// resolveTarget parses the token and, for names, resolves it remotely.
func (f *Fetcher) resolveTarget(ctx context.Context, raw string) (domain.Target, domain.Coordinate, error) {
	target, err := coord.Parse(raw)
	if err != nil {
		return domain.Target{Raw: raw, Kind: domain.TargetName}, domain.Coordinate{}, err
	}
	if target.Kind == domain.TargetCoordinate {
		return target, target.Coord, nil
	}

	c, err := f.resolver.Resolve(ctx, target.Raw)
	if err != nil {
		return target, domain.Coordinate{}, err
	}
	return target, c, nil
}

// fetchWithRetry tries one survey, retrying a single time with backoff on
// a transport error. Decode and non-image failures are not retried here;
// they already consumed a full response.
func (f *Fetcher) fetchWithRetry(ctx context.Context, s domain.Survey, c domain.Coordinate, fov float64) (*domain.Image, error) {
	img, err := f.cutouts.FetchCutout(ctx, s, c, fov)
	if err == nil || !errors.Is(err, domain.ErrNetwork) {
		return img, err
	}

	b := newBackoff(f.retryDelay, DefaultBackoffMax)
	if serr := b.Sleep(ctx); serr != nil {
		return nil, err
	}
	return f.cutouts.FetchCutout(ctx, s, c, fov)
}
