package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		gamma    float64
		expected uint8
	}{
		{"one maps to 255", 1.0, 2.0, 255},
		{"zero maps to 0", 0.0, 2.0, 0},
		{"quarter is square rooted", 0.25, 2.0, 127},
		{"truncates instead of rounding", 0.998, 2.0, 255},
		{"just under half", 0.2499, 2.0, 127},
		{"linear gamma", 0.5, 1.0, 127},
		{"negative clamps", -0.5, 1.0, 0},
		{"overbright clamps", 4.0, 2.0, 255},
		{"NaN is black", math.NaN(), 2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Quantize(core.NewVec3(tt.linear, tt.linear, tt.linear), tt.gamma)
			if c.R != tt.expected || c.G != tt.expected || c.B != tt.expected {
				t.Errorf("Expected %d, got %v", tt.expected, c)
			}
			if c.A != 255 {
				t.Errorf("Expected opaque alpha, got %d", c.A)
			}
		})
	}
}

func TestQuantize_ChannelsIndependent(t *testing.T) {
	c := Quantize(core.NewVec3(1.0, 0.0, 0.25), 2.0)
	expected := color.RGBA{R: 255, G: 0, B: 127, A: 255}
	if c != expected {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestPixelBuffer(t *testing.T) {
	buffer := NewPixelBuffer(3, 2)

	if len(buffer.Pix) != 3*2*4 {
		t.Fatalf("Expected %d bytes, got %d", 3*2*4, len(buffer.Pix))
	}
	for i := 3; i < len(buffer.Pix); i += 4 {
		if buffer.Pix[i] != 255 {
			t.Fatalf("Expected opaque alpha at byte %d", i)
		}
	}

	setPixel(buffer.Row(1), 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got := buffer.At(2, 1); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Expected written pixel back, got %v", got)
	}

	// Image shares storage with the buffer
	img := buffer.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 image, got %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("Expected image to see written pixel, got %v", got)
	}
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	if buffer.Pix[0] != 1 {
		t.Error("Expected image writes to land in the buffer")
	}
}
