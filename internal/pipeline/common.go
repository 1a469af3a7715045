package pipeline

import (
	"context"
	"time"

	"salmap/internal/debug/timing"
	"salmap/internal/heatmap"
)

// Logger is satisfied by logger.ZerologAdapter.
type Logger interface {
	Debug(component string, message string, fields map[string]interface{})
	Info(component string, message string, fields map[string]interface{})
	Warning(component string, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

type TimingTracker interface {
	StartTiming(parent context.Context, operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
	GetAllTimings() []timing.StageTiming
	Reset()
}

// StimulusLoader decodes the image a heatmap is blended over.
type StimulusLoader interface {
	Load(path string) (*heatmap.ColorImage, error)
}

// ImageSaver persists the final raster.
type ImageSaver interface {
	Save(path string, img *heatmap.ColorImage) error
}
