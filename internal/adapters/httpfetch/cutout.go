// Package httpfetch implements the cutout port against the survey HTTP
// endpoints. It builds the per-survey request URL, handles rate-limit
// retries, and decodes the response into a luminance buffer for blank
// classification.
package httpfetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	// Survey cutout endpoints serve JPEG; PNG shows up on some mirrors.
	_ "image/jpeg"
	_ "image/png"

	"github.com/skyviewhq/skyview/internal/domain"
	"github.com/skyviewhq/skyview/internal/ports"
	"github.com/skyviewhq/skyview/pkg/log"
)

// maxRateLimitRetries bounds retries on HTTP 429 responses.
const maxRateLimitRetries = 2

// Cutout fetches cutout images over HTTP. It implements
// ports.CutoutService.
type Cutout struct {
	client ports.HTTPClient
	logger ports.Logger

	// rateLimitDelay is the first wait after a 429; doubles per retry.
	// Overridable in tests.
	rateLimitDelay time.Duration
}

// NewCutout creates a new HTTP cutout adapter.
func NewCutout(client ports.HTTPClient, logger ports.Logger) *Cutout {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Cutout{client: client, logger: logger, rateLimitDelay: time.Second}
}

// FetchCutout requests one cutout from one survey. Transport failures and
// 5xx responses are returned wrapped in domain.ErrNetwork so the caller
// can distinguish them from decode problems; 429 responses are retried
// here with exponential backoff before giving up.
func (c *Cutout) FetchCutout(ctx context.Context, s domain.Survey, coord domain.Coordinate, fovArcmin float64) (*domain.Image, error) {
	reqURL := requestURL(s, coord, s.CutoutSize(fovArcmin))

	delay := c.rateLimitDelay
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrNetwork, s.ID, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRateLimitRetries {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.logger.Debug("rate limited, backing off",
				log.String("survey", s.ID),
				log.Duration("delay", delay))
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
			continue
		}

		img, err := c.readImage(resp, s)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
}

// readImage validates and decodes a cutout response.
func (c *Cutout) readImage(resp *http.Response, s domain.Survey) (*domain.Image, error) {
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrNetwork, s.ID, resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("survey %s returned %d: %s", s.ID, resp.StatusCode, bytes.TrimSpace(body))
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !isImageContentType(ct) {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("survey %s returned non-image content type %q", s.ID, ct)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrNetwork, s.ID, err)
	}

	return Decode(raw)
}

// Decode turns encoded image bytes into a domain.Image with an 8-bit
// luminance buffer.
func Decode(raw []byte) (*domain.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode cutout: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]uint8, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			// ITU-R BT.601 luma, 16-bit channels down to 8 bits.
			lum := (19595*r + 38470*g + 7471*bl) >> 24
			pixels = append(pixels, uint8(lum))
		}
	}

	return &domain.Image{Pixels: pixels, Width: w, Height: h, Encoded: raw}, nil
}

// requestURL builds the cutout request for a survey endpoint style.
func requestURL(s domain.Survey, coord domain.Coordinate, size int) string {
	q := url.Values{}
	q.Set("ra", strconv.FormatFloat(coord.RA, 'f', -1, 64))
	q.Set("dec", strconv.FormatFloat(coord.Dec, 'f', -1, 64))
	q.Set("size", strconv.Itoa(size))

	switch s.Style {
	case domain.StyleFitscut:
		q.Set("format", "jpg")
		q.Set("output_size", strconv.Itoa(size))
		q.Set("autoscale", "99.5")
		q.Set("filter", "color")
	default:
		q.Set("pixscale", strconv.FormatFloat(s.PixScale, 'f', -1, 64))
		q.Set("layer", s.ID)
	}

	return s.BaseURL + "?" + q.Encode()
}

func isImageContentType(ct string) bool {
	return len(ct) >= 5 && ct[:5] == "image"
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
