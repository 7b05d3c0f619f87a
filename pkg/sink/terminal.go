package sink

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/nfnt/resize"
)

// DefaultColumns is the preview width used when none is configured
const DefaultColumns = 80

// TerminalSink prints a preview of the image using upper half blocks, two
// pixel rows per terminal row
type TerminalSink struct {
	Out     io.Writer
	Columns int // Maximum preview width in cells
}

// NewTerminalSink creates a preview sink writing to out
func NewTerminalSink(out io.Writer, columns int) *TerminalSink {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &TerminalSink{Out: out, Columns: columns}
}

// Write downsamples the image to fit and prints it
func (t *TerminalSink) Write(ctx context.Context, width, height int, pix []byte) error {
	if err := checkBuffer(width, height, pix); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buffer := t.Draw(t.fit(toImage(width, height, pix)))
	if _, err := io.WriteString(t.Out, buffer.Render()+"\n"); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// fit scales the image down to the column budget, keeping its aspect ratio
func (t *TerminalSink) fit(img *image.RGBA) image.Image {
	columns := t.Columns
	if columns <= 0 {
		columns = DefaultColumns
	}
	if img.Bounds().Dx() <= columns {
		return img
	}
	return resize.Resize(uint(columns), 0, img, resize.Bilinear)
}

// Draw converts an image to terminal cells.
// Each cell is ▀ with fg=top pixel and bg=bottom pixel; an odd last row has no background.
func (t *TerminalSink) Draw(img image.Image) *uv.Buffer {
	bounds := img.Bounds()
	cols := bounds.Dx()
	rows := (bounds.Dy() + 1) / 2
	buffer := uv.NewBuffer(cols, rows)

	for row := 0; row < rows; row++ {
		topY := bounds.Min.Y + row*2
		botY := topY + 1

		for col := 0; col < cols; col++ {
			x := bounds.Min.X + col
			style := uv.Style{Fg: rgbaAt(img, x, topY)}
			if botY < bounds.Max.Y {
				style.Bg = rgbaAt(img, x, botY)
			}
			buffer.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style:   style,
			})
		}
	}
	return buffer
}

func rgbaAt(img image.Image, x, y int) color.Color {
	return color.RGBAModel.Convert(img.At(x, y))
}
