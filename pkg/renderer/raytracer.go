package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/config"
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
)

// Raytracer renders one image of a world through a camera.
// The camera, world and integrator are only read during rendering.
type Raytracer struct {
	camera     *Camera
	world      core.Hittable
	integrator integrator.Integrator
	config     config.RenderConfig
	seed       int64
	logger     core.Logger
}

// NewRaytracer creates a raytracer after validating the render configuration.
// A nil camera selects the default camera, a nil integrator the diffuse
// integrator (honoring AbsorbOnExhaustion) and a nil logger discards output.
func NewRaytracer(camera *Camera, world core.Hittable, integ integrator.Integrator, cfg config.RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if camera == nil {
		camera = NewDefaultCamera()
	}
	if integ == nil {
		diffuse := integrator.NewDiffuseIntegrator()
		diffuse.AbsorbOnExhaustion = cfg.AbsorbOnExhaustion
		integ = diffuse
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integ,
		config:     cfg,
		seed:       cfg.ResolvedSeed(),
		logger:     logger,
	}, nil
}

// Seed returns the seed every render of this raytracer uses
func (rt *Raytracer) Seed() int64 {
	return rt.seed
}

// Render renders the full image. One worker runs the sequential single-stream
// renderer; more workers render rows in parallel with a private stream per row.
// On cancellation the partially filled buffer is returned with ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	numWorkers := rt.config.Workers
	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, %d bounces, seed %d, workers %d\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxBounces, rt.seed, numWorkers)

	start := time.Now()
	buffer := NewPixelBuffer(int(rt.config.Width), int(rt.config.Height))

	var stats RenderStats
	var err error
	if numWorkers == 1 {
		stats, err = rt.renderSequential(ctx, buffer)
	} else {
		stats, err = rt.renderParallel(ctx, buffer, numWorkers)
	}
	stats.finalize(buffer.Image(), start)

	if err != nil {
		rt.logger.Printf("Render stopped after %d of %d rows: %v\n", stats.RowsRendered, buffer.Height, err)
		return buffer, stats, err
	}
	rt.logger.Printf("Render completed in %v (%d samples, average luminance %.3f)\n",
		stats.Elapsed, stats.TotalSamples, stats.AverageLuminance)
	return buffer, stats, nil
}

// RenderPass renders the full image with the sequential single-stream renderer,
// regardless of the configured worker count
func (rt *Raytracer) RenderPass(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	start := time.Now()
	buffer := NewPixelBuffer(int(rt.config.Width), int(rt.config.Height))
	stats, err := rt.renderSequential(ctx, buffer)
	stats.finalize(buffer.Image(), start)
	return buffer, stats, err
}

// renderSequential scans every pixel in raster order from the top row down,
// drawing every random number from one stream
func (rt *Raytracer) renderSequential(ctx context.Context, buffer *PixelBuffer) (RenderStats, error) {
	stats := RenderStats{Workers: 1}
	sampler := core.NewSeededSampler(rt.seed)

	for y := 0; y < buffer.Height; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.add(rt.renderRow(y, sampler, buffer))
	}
	return stats, nil
}

// renderParallel feeds one task per row to a worker pool. Each row seeds its
// own stream from a mix of the render seed and its row index, so the image
// does not depend on the number of workers.
func (rt *Raytracer) renderParallel(ctx context.Context, buffer *PixelBuffer, numWorkers int) (RenderStats, error) {
	pool := NewWorkerPool(ctx, rt, buffer, numWorkers)
	pool.Start()

	for y := 0; y < buffer.Height; y++ {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(RowTask{Row: y, Sampler: core.NewSeededSampler(core.RowSeed(rt.seed, y))})
	}
	pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.add(result)
	}

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return stats, firstErr
}

// renderRow renders image row y (0 is the top) into the buffer.
// Image row y looks through scanline j = height-1-y of the camera, whose
// vertical axis points up.
func (rt *Raytracer) renderRow(y int, sampler core.Sampler, buffer *PixelBuffer) RowResult {
	j := buffer.Height - 1 - y
	row := buffer.Row(y)
	for x := 0; x < buffer.Width; x++ {
		setPixel(row, x, Quantize(rt.samplePixel(x, j, sampler), rt.config.Gamma))
	}
	return RowResult{
		Row:     y,
		Pixels:  buffer.Width,
		Samples: buffer.Width * int(rt.config.SamplesPerPixel),
	}
}

// samplePixel averages the linear color of every sample through pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for s := 0; s < int(rt.config.SamplesPerPixel); s++ {
		u, v := rt.sampleUV(i, j, sampler)
		ray := rt.camera.GetRay(u, v)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler, int(rt.config.MaxBounces)))
	}
	return ps.GetColor()
}

// sampleUV returns the image-plane coordinates of one sample: a random
// position inside the pixel when jittering, the pixel center otherwise.
// The u offset is drawn before the v offset.
func (rt *Raytracer) sampleUV(i, j int, sampler core.Sampler) (float64, float64) {
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)
	if !rt.config.Jitter {
		return (float64(i) + 0.5) / width, (float64(j) + 0.5) / height
	}
	u := (float64(i) + sampler.Get1D()) / width
	v := (float64(j) + sampler.Get1D()) / height
	return u, v
}
