package sink

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MultiSink writes the same image to several sinks concurrently
type MultiSink struct {
	sinks []ImageSink
}

// NewMultiSink combines sinks; nil entries are skipped
func NewMultiSink(sinks ...ImageSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Len returns the number of sinks
func (m *MultiSink) Len() int {
	return len(m.sinks)
}

// Write validates once and then writes to every sink. The first failure
// cancels the context handed to the others and is returned.
// Sinks only read pix.
func (m *MultiSink) Write(ctx context.Context, width, height int, pix []byte) error {
	if err := checkBuffer(width, height, pix); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m.sinks {
		g.Go(func() error {
			return s.Write(ctx, width, height, pix)
		})
	}
	return g.Wait()
}
