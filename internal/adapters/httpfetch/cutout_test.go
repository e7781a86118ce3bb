package httpfetch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skyviewhq/skyview/internal/domain"
)

// encodeJPEG renders a w×h image through fill and returns its JPEG bytes.
func encodeJPEG(t *testing.T, w, h int, fill func(x, y int) uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill(x, y)})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func testSurvey() domain.Survey {
	return domain.Survey{ID: "ls-dr10", PixScale: 0.262, DefaultSize: 64, MaxSize: 3000, MinDec: -70, MaxDec: 90}
}

func TestFetchCutoutDecodes(t *testing.T) {
	payload := encodeJPEG(t, 32, 32, func(x, y int) uint8 { return uint8(x * 8) })

	var gotQuery atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer ts.Close()

	s := testSurvey()
	s.BaseURL = ts.URL

	c := NewCutout(ts.Client(), nil)
	img, err := c.FetchCutout(context.Background(), s, domain.Coordinate{RA: 150, Dec: 2.2}, 0)
	if err != nil {
		t.Fatalf("FetchCutout: %v", err)
	}
	if img.Width != 32 || img.Height != 32 {
		t.Errorf("dimensions = %dx%d, want 32x32", img.Width, img.Height)
	}
	if len(img.Pixels) != 32*32 {
		t.Errorf("pixel buffer length = %d, want %d", len(img.Pixels), 32*32)
	}
	if img.Stddev() < 1 {
		t.Errorf("gradient image stddev = %v, want clearly non-blank", img.Stddev())
	}
	if !bytes.Equal(img.Encoded, payload) {
		t.Error("Encoded bytes differ from server payload")
	}

	q := gotQuery.Load().(url.Values)
	if q.Get("layer") != "ls-dr10" {
		t.Errorf("layer = %q, want ls-dr10", q.Get("layer"))
	}
	if q.Get("size") != "64" {
		t.Errorf("size = %q, want default 64", q.Get("size"))
	}
}

func TestFetchCutoutFitscutQuery(t *testing.T) {
	s := testSurvey()
	s.ID = "panstarrs"
	s.Style = domain.StyleFitscut
	s.BaseURL = "https://example.test/fitscut.cgi"
	s.PixScale = 0.25
	s.MaxSize = 1200

	u := requestURL(s, domain.Coordinate{RA: 150, Dec: 2.2}, 240)
	for _, want := range []string{"format=jpg", "output_size=240", "autoscale=99.5", "filter=color"} {
		if !strings.Contains(u, want) {
			t.Errorf("fitscut URL %q missing %q", u, want)
		}
	}
	if strings.Contains(u, "layer=") {
		t.Errorf("fitscut URL %q carries viewer-style layer param", u)
	}
}

func TestFetchCutoutRetriesRateLimit(t *testing.T) {
	payload := encodeJPEG(t, 8, 8, func(x, y int) uint8 { return uint8(x + y) })

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer ts.Close()

	s := testSurvey()
	s.BaseURL = ts.URL

	c := NewCutout(ts.Client(), nil)
	c.rateLimitDelay = time.Millisecond
	if _, err := c.FetchCutout(context.Background(), s, domain.Coordinate{}, 0); err != nil {
		t.Fatalf("FetchCutout: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestFetchCutoutServerErrorIsNetwork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	s := testSurvey()
	s.BaseURL = ts.URL

	c := NewCutout(ts.Client(), nil)
	if _, err := c.FetchCutout(context.Background(), s, domain.Coordinate{}, 0); !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}

func TestFetchCutoutRejectsNonImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>no coverage</html>"))
	}))
	defer ts.Close()

	s := testSurvey()
	s.BaseURL = ts.URL

	c := NewCutout(ts.Client(), nil)
	_, err := c.FetchCutout(context.Background(), s, domain.Coordinate{}, 0)
	if err == nil {
		t.Fatal("FetchCutout accepted a non-image response")
	}
	if errors.Is(err, domain.ErrNetwork) {
		t.Errorf("non-image response classified as network error: %v", err)
	}
}
