package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// ErrLossyFormat is returned for output formats that would alter pixel values
var ErrLossyFormat = errors.New("output format is not lossless")

// FileSink writes the image to a file whose extension picks the format.
// Only lossless formats are accepted: PNG, BMP and TIFF.
type FileSink struct {
	Path string
}

// NewFileSink creates a file sink, rejecting unknown or lossy extensions up front
func NewFileSink(path string) (*FileSink, error) {
	if _, err := losslessFormat(path); err != nil {
		return nil, err
	}
	return &FileSink{Path: path}, nil
}

// Write encodes and saves the image
func (f *FileSink) Write(ctx context.Context, width, height int, pix []byte) error {
	if err := checkBuffer(width, height, pix); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := losslessFormat(f.Path); err != nil {
		return err
	}

	if err := imaging.Save(toImage(width, height, pix), f.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return nil
}

func losslessFormat(path string) (imaging.Format, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return format, fmt.Errorf("output %s: %w", path, err)
	}
	switch format {
	case imaging.PNG, imaging.BMP, imaging.TIFF:
		return format, nil
	}
	return format, fmt.Errorf("%w: %s", ErrLossyFormat, path)
}
