package pipeline

import (
	"context"
	"errors"
	"fmt"

	"salmap/internal/config"
	"salmap/internal/debug/timing"
	"salmap/internal/fixation"
	"salmap/internal/heatmap"
	"salmap/internal/processing/filters"
)

// Result is the outcome of a completed run.
type Result struct {
	Report *Report
	Image  *heatmap.ColorImage
}

// Coordinator runs the fixed stage sequence for one configuration:
// read, accumulate, smooth, normalize, colorize, blend, save.
type Coordinator struct {
	cfg      *config.Config
	palette  heatmap.Palette
	order    heatmap.ChannelOrder
	smoother heatmap.Smoother
	blender  heatmap.Blender
	loader   StimulusLoader
	saver    ImageSaver
	logger   Logger
	tracker  TimingTracker
}

type Option func(*Coordinator)

func WithPalette(p heatmap.Palette) Option {
	return func(c *Coordinator) { c.palette = p }
}

func WithSmoother(s heatmap.Smoother) Option {
	return func(c *Coordinator) { c.smoother = s }
}

func WithBlender(b heatmap.Blender) Option {
	return func(c *Coordinator) { c.blender = b }
}

func WithLoader(l StimulusLoader) Option {
	return func(c *Coordinator) { c.loader = l }
}

func WithSaver(s ImageSaver) Option {
	return func(c *Coordinator) { c.saver = s }
}

// NewCoordinator wires the stages for cfg.Backend. The OpenCV backend keeps
// color rasters in BGR, the Go backend in RGB.
func NewCoordinator(cfg *config.Config, log Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg:     cfg,
		palette: heatmap.Coolwarm(),
		loader:  NewLoader(log),
		saver:   NewSaver(log, cfg.JPEGQuality),
		logger:  log,
		tracker: timing.NewTracker(),
	}

	switch cfg.Backend {
	case config.BackendOpenCV:
		c.order = heatmap.BGR
		c.smoother = filters.NewGaussianFilter(cfg.Sigma, cfg.PixelsPerDegree)
		c.blender = filters.NewWeightedBlender()
	default:
		c.order = heatmap.RGB
		c.smoother = heatmap.NewGaussianSmoother(cfg.Sigma, cfg.PixelsPerDegree)
		c.blender = heatmap.LinearBlender{}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	c.tracker.Reset()
	report := &Report{
		FixationsPath: c.cfg.FixationsPath,
		OutputPath:    c.cfg.OutputPath,
	}

	stageCtx := c.tracker.StartTiming(ctx, "read_fixations")
	points, stats, err := fixation.ReadFile(c.cfg.FixationsPath)
	c.tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, err
	}
	report.Lines = stats.Lines
	report.Skipped = stats.Skipped

	stageCtx = c.tracker.StartTiming(ctx, "accumulate")
	density, accepted, err := heatmap.Accumulate(points, c.cfg.Width, c.cfg.Height)
	c.tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, err
	}
	report.Accepted = accepted
	report.OutOfBounds = len(points) - accepted

	c.logger.Info("Accumulator", "fixation points accumulated", map[string]interface{}{
		"path":          c.cfg.FixationsPath,
		"accepted":      accepted,
		"out_of_bounds": report.OutOfBounds,
		"malformed":     stats.Skipped,
	})

	stageCtx = c.tracker.StartTiming(ctx, "smooth")
	smoothed, err := c.smoother.Smooth(stageCtx, density)
	c.tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, fmt.Errorf("smoothing failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageCtx = c.tracker.StartTiming(ctx, "normalize")
	normalized, maxVal := heatmap.Normalize(smoothed)
	c.tracker.EndTiming(stageCtx)
	report.Max = maxVal
	if maxVal == 0 {
		c.logger.Warning("Normalizer", "density is zero everywhere", nil)
	}

	stageCtx = c.tracker.StartTiming(ctx, "colorize")
	colored, err := heatmap.Colorize(stageCtx, normalized, c.palette, c.order)
	c.tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, fmt.Errorf("colorization failed: %w", err)
	}

	final := colored
	if c.cfg.Blending() {
		final, err = c.blend(ctx, colored)
		if err != nil {
			return nil, err
		}
		report.Blended = true
		report.ImagePath = c.cfg.ImagePath
		report.BlendRatio = c.cfg.BlendRatio
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageCtx = c.tracker.StartTiming(ctx, "save")
	err = c.saver.Save(c.cfg.OutputPath, final)
	c.tracker.EndTiming(stageCtx)
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		c.logger.Warning("ImageSaver", "output not written", map[string]interface{}{
			"path":   c.cfg.OutputPath,
			"reason": err.Error(),
		})
	case err != nil:
		return nil, fmt.Errorf("failed to save output: %w", err)
	default:
		report.OutputWritten = true
	}

	report.Timings = c.tracker.GetAllTimings()
	for _, t := range report.Timings {
		c.logger.Debug("Coordinator", "stage finished", map[string]interface{}{
			"stage":       t.Operation,
			"duration_ms": t.Duration.Milliseconds(),
		})
	}
	c.logger.Debug("Coordinator", "run finished", map[string]interface{}{
		"stages":   len(report.Timings),
		"total_ms": report.TotalTime().Milliseconds(),
		"written":  report.OutputWritten,
	})

	return &Result{Report: report, Image: final}, nil
}

func (c *Coordinator) blend(ctx context.Context, colored *heatmap.ColorImage) (*heatmap.ColorImage, error) {
	stageCtx := c.tracker.StartTiming(ctx, "load_stimulus")
	stimulus, err := c.loader.Load(c.cfg.ImagePath)
	c.tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, err
	}

	stageCtx = c.tracker.StartTiming(ctx, "blend")
	blended, err := c.blender.Blend(stageCtx, colored, stimulus, c.cfg.BlendRatio)
	c.tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, fmt.Errorf("blending failed: %w", err)
	}

	c.logger.Info("Blender", "blended saliency map", map[string]interface{}{
		"image": c.cfg.ImagePath,
		"ratio": c.cfg.BlendRatio,
	})
	return blended, nil
}
