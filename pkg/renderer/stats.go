package renderer

import (
	"image"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	AverageSamples   float64       // Average samples per pixel
	RowsRendered     int           // Rows completed before the render finished or was cancelled
	Workers          int           // Goroutines used (1 for the sequential path)
	Elapsed          time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the final 8-bit image, in [0,1]
}

// add merges the counters of a finished row
func (s *RenderStats) add(row RowResult) {
	s.TotalPixels += row.Pixels
	s.TotalSamples += row.Samples
	s.RowsRendered++
}

// finalize computes the derived fields once every row is in
func (s *RenderStats) finalize(img *image.RGBA, start time.Time) {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
	s.Elapsed = time.Since(start)
	s.AverageLuminance = CalculateAverageLuminance(img)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean luminance of an 8-bit image, in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	if img == nil {
		return 0
	}
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Luminance() / 255.0
		}
	}
	return total / float64(count)
}
