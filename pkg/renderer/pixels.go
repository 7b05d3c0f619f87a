package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// quantizeScale maps [0,1] onto [0,255] by truncation; 1.0 still lands on 255
const quantizeScale = 255.99

// PixelBuffer is a flat row-major RGBA image, top row first
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewPixelBuffer allocates an opaque black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	pix := make([]byte, width*height*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}
}

// Row returns the bytes of image row y (0 is the top row)
func (b *PixelBuffer) Row(y int) []byte {
	stride := b.Width * 4
	return b.Pix[y*stride : (y+1)*stride]
}

// At returns the pixel at (x, y), with y counted from the top
func (b *PixelBuffer) At(x, y int) color.RGBA {
	i := (y*b.Width + x) * 4
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Image wraps the buffer as an *image.RGBA sharing the same bytes
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Quantize converts a linear color to an opaque 8-bit pixel: gamma correction
// followed by floor(255.99 * channel). Out-of-range channels are clamped.
func Quantize(linear core.Vec3, gamma float64) color.RGBA {
	corrected := linear.GammaCorrect(gamma)
	return color.RGBA{
		R: quantizeChannel(corrected.X),
		G: quantizeChannel(corrected.Y),
		B: quantizeChannel(corrected.Z),
		A: 255,
	}
}

func quantizeChannel(c float64) uint8 {
	v := math.Floor(quantizeScale * c)
	switch {
	case !(v > 0): // also catches NaN
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// setPixel writes an opaque color into a row slice
func setPixel(row []byte, x int, c color.RGBA) {
	i := x * 4
	row[i] = c.R
	row[i+1] = c.G
	row[i+2] = c.B
	row[i+3] = c.A
}
