package sink

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// ErrBufferSize is returned when the pixel slice does not hold width*height RGBA pixels
var ErrBufferSize = errors.New("pixel buffer size does not match dimensions")

// ImageSink persists a finished render.
// pix is row-major RGBA, top row first, exactly width*height*4 bytes.
type ImageSink interface {
	Write(ctx context.Context, width, height int, pix []byte) error
}

// checkBuffer validates the dimensions against the pixel slice
func checkBuffer(width, height int, pix []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrBufferSize, width, height, width*height*4, len(pix))
	}
	return nil
}

// toImage wraps the pixels without copying
func toImage(width, height int, pix []byte) *image.RGBA {
	return &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}
