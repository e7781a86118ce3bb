// Package resolver implements name resolution against the CDS Sesame
// service (SIMBAD / NED / VizieR) with a cache-aside read path.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skyviewhq/skyview/internal/cache"
	"github.com/skyviewhq/skyview/internal/domain"
	"github.com/skyviewhq/skyview/internal/ports"
	"github.com/skyviewhq/skyview/pkg/log"
)

// DefaultEndpoint is the CDS Sesame resolver endpoint. The "-op" path
// selects plain-text output; the trailing service order is SIMBAD first,
// then NED, then VizieR.
const DefaultEndpoint = "https://cds.unistra.fr/cgi-bin/nph-sesame/-op/SNV"

const (
	// maxRetries is how many additional attempts follow a transient failure.
	maxRetries = 2

	// backoffBase is the first retry delay; each retry doubles it.
	backoffBase = 500 * time.Millisecond
)

// Sesame resolves object names via the Sesame HTTP service. Results are
// stored in an injected LRU cache so repeated names cost one remote call.
// Negative results are never cached.
type Sesame struct {
	client   ports.HTTPClient
	names    *cache.Names
	logger   ports.Logger
	endpoint string

	// retryDelay is the first retry backoff; overridable in tests.
	retryDelay time.Duration
}

// NewSesame creates a resolver using the given HTTP client and cache.
// An empty endpoint selects DefaultEndpoint.
func NewSesame(client ports.HTTPClient, names *cache.Names, logger ports.Logger, endpoint string) *Sesame {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Sesame{client: client, names: names, logger: logger, endpoint: endpoint, retryDelay: backoffBase}
}

// Resolve returns the coordinate for an object name, consulting the cache
// first. On a miss it queries Sesame, retrying up to twice on transient
// transport failures with exponential backoff. A definitive "no match"
// answer fails immediately without retries.
func (s *Sesame) Resolve(ctx context.Context, name string) (domain.Coordinate, error) {
	if c, ok := s.names.Get(name); ok {
		s.logger.Debug("name cache hit", log.String("name", name))
		return c, nil
	}

	var lastErr error
	delay := s.retryDelay
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Debug("retrying name resolution",
				log.String("name", name),
				log.Int("attempt", attempt),
				log.Duration("delay", delay))
			if err := sleepCtx(ctx, delay); err != nil {
				return domain.Coordinate{}, err
			}
			delay *= 2
		}

		c, err := s.query(ctx, name)
		if err == nil {
			s.names.Put(name, c)
			return c, nil
		}
		if !isTransient(err) {
			return domain.Coordinate{}, err
		}
		lastErr = err
	}

	return domain.Coordinate{}, fmt.Errorf("%w: %q: %v", domain.ErrNameNotResolved, name, lastErr)
}

// query performs a single Sesame request.
func (s *Sesame) query(ctx context.Context, name string) (domain.Coordinate, error) {
	reqURL := s.endpoint + "?" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, &transientError{fmt.Errorf("sesame request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return domain.Coordinate{}, &transientError{fmt.Errorf("sesame returned %d", resp.StatusCode)}
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return domain.Coordinate{}, fmt.Errorf("%w: %q: sesame returned %d: %s",
			domain.ErrNameNotResolved, name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Coordinate{}, &transientError{fmt.Errorf("read sesame response: %w", err)}
	}

	c, ok := parseSesame(string(body))
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("%w: %q", domain.ErrNameNotResolved, name)
	}
	if !c.Valid() {
		return domain.Coordinate{}, fmt.Errorf("%w: %q: position out of range", domain.ErrNameNotResolved, name)
	}
	return c, nil
}

// parseSesame extracts the J2000 position from Sesame plain-text output.
// The position line has the form "%J 030.2770 -06.8155 = ...".
func parseSesame(body string) (domain.Coordinate, bool) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "%J ") {
			continue
		}
		fields := strings.Fields(line[3:])
		if len(fields) < 2 {
			continue
		}
		ra, err1 := strconv.ParseFloat(fields[0], 64)
		dec, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		return domain.Coordinate{RA: ra, Dec: dec}, true
	}
	return domain.Coordinate{}, false
}

// transientError marks failures worth retrying: transport errors, 5xx
// responses, and rate limiting.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
