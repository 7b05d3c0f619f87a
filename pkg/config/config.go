package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidResolution is returned when the image width or height is zero
	ErrInvalidResolution = errors.New("resolution must be at least 1x1")
	// ErrInvalidSamples is returned when fewer than one sample per pixel is requested
	ErrInvalidSamples = errors.New("samples per pixel must be at least 1")
	// ErrInvalidBounces is returned for a negative bounce budget
	ErrInvalidBounces = errors.New("max bounces must not be negative")
	// ErrInvalidWorkers is returned for a negative worker count
	ErrInvalidWorkers = errors.New("workers must not be negative")
	// ErrInvalidGamma is returned for a gamma that is not a positive finite number
	ErrInvalidGamma = errors.New("gamma must be positive and finite")
)

// RenderConfig contains the parameters of a single render
type RenderConfig struct {
	Width           uint16
	Height          uint16
	SamplesPerPixel uint16
	MaxBounces      int16

	// Seed is used only when HasSeed is set; otherwise every render gets a fresh seed
	Seed    int64
	HasSeed bool

	// Workers is the number of goroutines rendering rows.
	// 1 selects the sequential single-stream renderer, 0 uses every CPU.
	Workers int

	Jitter             bool    // Randomize sample positions inside each pixel
	AbsorbOnExhaustion bool    // Return black instead of sky once the bounce budget is spent on a hit
	Gamma              float64 // Display gamma, 2 means square root
}

// Default returns the reference render settings
func Default() RenderConfig {
	return RenderConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxBounces:      5,
		Seed:            42,
		HasSeed:         true,
		Workers:         1,
		Jitter:          true,
		Gamma:           2.0,
	}
}

// Validate reports every invalid field at once
func (c RenderConfig) Validate() error {
	var errs []error
	if c.Width == 0 || c.Height == 0 {
		errs = append(errs, fmt.Errorf("%w: got %dx%d", ErrInvalidResolution, c.Width, c.Height))
	}
	if c.SamplesPerPixel == 0 {
		errs = append(errs, ErrInvalidSamples)
	}
	if c.MaxBounces < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidBounces, c.MaxBounces))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers))
	}
	if !(c.Gamma > 0) || math.IsInf(c.Gamma, 1) {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidGamma, c.Gamma))
	}
	return errors.Join(errs...)
}

// ResolvedSeed returns the configured seed, or a time-based one when none was given
func (c RenderConfig) ResolvedSeed() int64 {
	if c.HasSeed {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// PixelCount returns the number of pixels in the image
func (c RenderConfig) PixelCount() int {
	return int(c.Width) * int(c.Height)
}
