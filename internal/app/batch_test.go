package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skyviewhq/skyview/internal/domain"
)

func TestFetchManyPreservesInputOrder(t *testing.T) {
	// The first target is the slowest; later targets complete first.
	cutouts := &fakeCutouts{fetch: func(s domain.Survey, c domain.Coordinate) (*domain.Image, error) {
		switch c.RA {
		case 10.0:
			time.Sleep(60 * time.Millisecond)
		case 20.0:
			time.Sleep(20 * time.Millisecond)
		}
		return starImage(), nil
	}}

	f := newTestFetcher(cutouts, nil)
	raws := []string{"10.0 10.0", "20.0 20.0", "30.0 30.0"}

	results, err := f.FetchMany(context.Background(), raws, Options{Workers: 8})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(results) != len(raws) {
		t.Fatalf("results = %d, want %d", len(results), len(raws))
	}
	for i, raw := range raws {
		if results[i].Target.Raw != raw {
			t.Errorf("results[%d].Target.Raw = %q, want %q", i, results[i].Target.Raw, raw)
		}
		if results[i].Status != domain.StatusSuccess {
			t.Errorf("results[%d].Status = %v, want success", i, results[i].Status)
		}
	}
}

func TestFetchManyIsolatesFailures(t *testing.T) {
	cutouts := &fakeCutouts{fetch: func(s domain.Survey, c domain.Coordinate) (*domain.Image, error) {
		return starImage(), nil
	}}
	f := newTestFetcher(cutouts, map[string]domain.Coordinate{
		"NGC 788": {RA: 30.2769, Dec: -6.8156},
	})

	raws := []string{"NGC 788", "definitely not a real object", "150.0 2.2"}
	results, err := f.FetchMany(context.Background(), raws, Options{})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}

	if results[0].Status != domain.StatusSuccess {
		t.Errorf("results[0].Status = %v, want success", results[0].Status)
	}
	if results[1].Status != domain.StatusResolutionFailed {
		t.Errorf("results[1].Status = %v, want resolution-failed", results[1].Status)
	}
	if results[2].Status != domain.StatusSuccess {
		t.Errorf("results[2].Status = %v, want success despite neighbor failure", results[2].Status)
	}
}

func TestFetchManyEveryTargetFetched(t *testing.T) {
	cutouts := &fakeCutouts{fetch: func(s domain.Survey, c domain.Coordinate) (*domain.Image, error) {
		return starImage(), nil
	}}
	f := newTestFetcher(cutouts, nil)

	// More targets than workers so each worker claims several indices.
	raws := make([]string, 50)
	for i := range raws {
		raws[i] = fmt.Sprintf("%d.0 1.0", i)
	}

	results, err := f.FetchMany(context.Background(), raws, Options{Workers: 4})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	for i, r := range results {
		if r.Status != domain.StatusSuccess {
			t.Fatalf("results[%d].Status = %v, want success", i, r.Status)
		}
		if r.Target.Raw != raws[i] {
			t.Fatalf("results[%d] belongs to %q, want %q", i, r.Target.Raw, raws[i])
		}
	}
}

func TestFetchManyConfigErrors(t *testing.T) {
	cutouts := &fakeCutouts{fetch: func(s domain.Survey, c domain.Coordinate) (*domain.Image, error) {
		return starImage(), nil
	}}
	f := newTestFetcher(cutouts, nil)

	if _, err := f.FetchMany(context.Background(), []string{"150.0 2.2"}, Options{Workers: -1}); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Workers=-1 error = %v, want ErrInvalidConfig", err)
	}
	if _, err := f.FetchMany(context.Background(), []string{"150.0 2.2"}, Options{Survey: "hubble"}); !errors.Is(err, domain.ErrUnknownSurvey) {
		t.Errorf("unknown survey error = %v, want ErrUnknownSurvey", err)
	}
	if got := cutouts.attemptIDs(); len(got) != 0 {
		t.Errorf("attempts = %v, want none after config errors", got)
	}
}

func TestFetchManyEmptyInput(t *testing.T) {
	cutouts := &fakeCutouts{fetch: func(s domain.Survey, c domain.Coordinate) (*domain.Image, error) {
		return starImage(), nil
	}}
	f := newTestFetcher(cutouts, nil)

	results, err := f.FetchMany(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}
