package domain

import "math"

// Status is the terminal state of a single target in the fetch pipeline.
type Status int

const (
	// StatusSuccess means a non-blank cutout was fetched.
	StatusSuccess Status = iota

	// StatusBlank means the single explicitly requested survey returned a
	// blank cutout and no fallback chain was in effect.
	StatusBlank

	// StatusExhausted means every candidate survey was tried and none
	// produced a usable image.
	StatusExhausted

	// StatusResolutionFailed means the target could not be turned into a
	// coordinate; no network fetch was attempted against any survey.
	StatusResolutionFailed

	// StatusNetworkError means every attempted survey failed at the
	// transport level; no survey ever returned image data.
	StatusNetworkError
)

// String returns the status name used in logs and CLI output.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusBlank:
		return "blank"
	case StatusExhausted:
		return "exhausted"
	case StatusResolutionFailed:
		return "resolution-failed"
	case StatusNetworkError:
		return "network-error"
	default:
		return "unknown"
	}
}

// Image is a decoded cutout. Pixels holds 8-bit luminance values in
// row-major order; Encoded holds the original bytes as returned by the
// survey, suitable for writing to disk unchanged.
type Image struct {
	Pixels  []uint8
	Width   int
	Height  int
	Encoded []byte
}

// Stddev returns the standard deviation of the luminance values. A value
// near zero means a uniform (blank) cutout.
func (im *Image) Stddev() float64 {
	n := len(im.Pixels)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, p := range im.Pixels {
		sum += float64(p)
	}
	mean := sum / float64(n)
	var sq float64
	for _, p := range im.Pixels {
		d := float64(p) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}

// FetchResult is the per-target outcome of the pipeline. It is created by
// the fallback fetcher, written exactly once into its batch slot, and
// immutable after that.
type FetchResult struct {
	// Target identifies the input; Target.Raw is the original token.
	Target Target

	// Coord is the resolved position; zero when resolution failed.
	Coord Coordinate

	// SurveyUsed is the ID of the survey that produced the image.
	// Empty unless Status is StatusSuccess or StatusBlank.
	SurveyUsed string

	// Image is the fetched cutout; nil unless Status is StatusSuccess or
	// StatusBlank.
	Image *Image

	// Status is the terminal pipeline state for this target.
	Status Status

	// Err carries the underlying cause for non-success statuses.
	Err error
}

// OK reports whether the target produced a usable image.
func (r FetchResult) OK() bool {
	return r.Status == StatusSuccess
}
