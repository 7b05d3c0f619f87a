package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/df07/go-diffuse-raytracer/pkg/config"
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
	"github.com/df07/go-diffuse-raytracer/pkg/sink"
)

// options holds the command line flags
type options struct {
	sceneName  string
	scenesDir  string
	envFile    string
	shading    string
	out        string
	s3Key      string
	width      uint16
	height     uint16
	samples    uint16
	bounces    int16
	seed       int64
	randomSeed bool
	workers    int
	noJitter   bool
	absorb     bool
	preview    bool
	listScenes bool
}

// printfLogger adapts a charm logger to core.Logger, one info line per message
type printfLogger struct {
	logger *log.Logger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "raytracer",
	})

	if err := fang.Execute(context.Background(), newRootCmd(logger)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	opts := &options{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Render spheres lit by a sky gradient",
		Long: "Renders a scene of spheres with diffuse path tracing and writes the image\n" +
			"to a lossless file, the terminal and optionally an S3 bucket.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.listScenes {
				return listScenes(cmd.OutOrStdout(), opts.scenesDir)
			}
			settings, err := config.FromEnv(opts.envFile)
			if err != nil {
				return err
			}
			applyFlags(cmd, opts, &settings)
			return run(cmd.Context(), opts, settings, cmd.OutOrStdout(), logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sceneName, "scene", "reference", "Scene: reference, empty, or a .json/.gltf/.glb file")
	flags.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "Directory searched by --list-scenes")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Optional file of RT_* settings")
	flags.StringVar(&opts.shading, "shading", "diffuse", "Shading: diffuse or normal")
	flags.StringVarP(&opts.out, "out", "o", config.DefaultOutputPath, "Output file (.png, .bmp or .tiff); empty to skip")
	flags.StringVar(&opts.s3Key, "s3-key", "", "Upload the image to RT_S3_BUCKET under this key")
	flags.Uint16Var(&opts.width, "width", defaults.Width, "Image width in pixels")
	flags.Uint16Var(&opts.height, "height", defaults.Height, "Image height in pixels")
	flags.Uint16VarP(&opts.samples, "samples", "s", defaults.SamplesPerPixel, "Samples per pixel")
	flags.Int16Var(&opts.bounces, "bounces", defaults.MaxBounces, "Maximum diffuse bounces")
	flags.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed")
	flags.BoolVar(&opts.randomSeed, "random-seed", false, "Seed from the clock instead of --seed")
	flags.IntVarP(&opts.workers, "workers", "w", defaults.Workers, "Render goroutines (1 = sequential, 0 = all CPUs)")
	flags.BoolVar(&opts.noJitter, "no-jitter", false, "Sample pixel centers instead of random positions")
	flags.BoolVar(&opts.absorb, "absorb", false, "Return black for rays still hitting geometry when bounces run out")
	flags.BoolVar(&opts.preview, "preview", false, "Print a preview to the terminal")
	flags.BoolVar(&opts.listScenes, "list-scenes", false, "List built-in scenes and scene files, then exit")

	return cmd
}

// applyFlags overlays explicitly set flags on the environment settings
func applyFlags(cmd *cobra.Command, opts *options, settings *config.Settings) {
	flags := cmd.Flags()
	r := &settings.Render
	if flags.Changed("width") {
		r.Width = opts.width
	}
	if flags.Changed("height") {
		r.Height = opts.height
	}
	if flags.Changed("samples") {
		r.SamplesPerPixel = opts.samples
	}
	if flags.Changed("bounces") {
		r.MaxBounces = opts.bounces
	}
	if flags.Changed("seed") {
		r.Seed, r.HasSeed = opts.seed, true
	}
	if opts.randomSeed {
		r.HasSeed = false
	}
	if flags.Changed("workers") {
		r.Workers = opts.workers
	}
	if opts.noJitter {
		r.Jitter = false
	}
	if opts.absorb {
		r.AbsorbOnExhaustion = true
	}
	if flags.Changed("out") {
		settings.OutputPath = opts.out
	}
}

func run(ctx context.Context, opts *options, settings config.Settings, stdout io.Writer, logger *log.Logger) error {
	cfg := settings.Render
	if err := cfg.Validate(); err != nil {
		return err
	}

	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	shader, err := createIntegrator(opts.shading, cfg.AbsorbOnExhaustion)
	if err != nil {
		return err
	}
	imageSink, err := createSink(opts, settings, stdout)
	if err != nil {
		return err
	}

	imageAspect := float64(cfg.Width) / float64(cfg.Height)
	if math.Abs(imageAspect-selectedScene.CameraConfig.AspectRatio) > 1e-3 {
		logger.Warn("image aspect ratio differs from the camera; the render will be stretched",
			"image", imageAspect, "camera", selectedScene.CameraConfig.AspectRatio)
	}
	logger.Info("scene loaded", "scene", opts.sceneName, "spheres", selectedScene.GetPrimitiveCount())

	raytracer, err := renderer.NewRaytracer(selectedScene.Camera, selectedScene.World, shader, cfg, printfLogger{logger})
	if err != nil {
		return err
	}

	buffer, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("render finished", "elapsed", stats.Elapsed, "samples", stats.TotalSamples, "workers", stats.Workers)

	if imageSink.Len() == 0 {
		logger.Warn("no output configured, discarding image")
		return nil
	}
	if err := imageSink.Write(ctx, buffer.Width, buffer.Height, buffer.Pix); err != nil {
		return err
	}
	if settings.OutputPath != "" {
		logger.Info("image saved", "path", settings.OutputPath)
	}
	return nil
}

// createScene returns a built-in scene or loads a scene file
func createScene(name string) (*scene.Scene, error) {
	s, err := scene.Load(name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func createIntegrator(shading string, absorb bool) (integrator.Integrator, error) {
	switch shading {
	case "", "diffuse":
		diffuse := integrator.NewDiffuseIntegrator()
		diffuse.AbsorbOnExhaustion = absorb
		return diffuse, nil
	case "normal":
		return integrator.NormalIntegrator{}, nil
	}
	return nil, fmt.Errorf("unknown shading %q (expected diffuse or normal)", shading)
}

// createSink combines every configured output
func createSink(opts *options, settings config.Settings, stdout io.Writer) (*sink.MultiSink, error) {
	var sinks []sink.ImageSink

	if settings.OutputPath != "" {
		if dir := filepath.Dir(settings.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		fileSink, err := sink.NewFileSink(settings.OutputPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fileSink)
	}

	if opts.preview {
		sinks = append(sinks, sink.NewTerminalSink(stdout, sink.DefaultColumns))
	}

	if opts.s3Key != "" {
		s3Sink, err := sink.NewS3Sink(settings.S3, opts.s3Key)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}

	return sink.NewMultiSink(sinks...), nil
}

func listScenes(out io.Writer, dir string) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

var _ core.Logger = printfLogger{}
