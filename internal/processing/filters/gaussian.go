// Package filters runs the smoothing and blending stages through OpenCV.
package filters

import (
	"context"
	"fmt"
	"image"

	"salmap/internal/heatmap"
	"salmap/internal/opencv/conversion"
	"salmap/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GaussianFilter is the OpenCV counterpart of heatmap.GaussianSmoother. It uses
// the same kernel size and a constant zero border.
type GaussianFilter struct {
	Sigma           float64
	PixelsPerDegree float64
}

func NewGaussianFilter(sigma, pixelsPerDegree float64) *GaussianFilter {
	return &GaussianFilter{Sigma: sigma, PixelsPerDegree: pixelsPerDegree}
}

func (g *GaussianFilter) Smooth(ctx context.Context, density *heatmap.DensityMap) (*heatmap.DensityMap, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if density == nil {
		return nil, fmt.Errorf("density map is nil")
	}

	sigmaPx := heatmap.SigmaPixels(g.Sigma, g.PixelsPerDegree)
	kernelSize := heatmap.KernelSize(sigmaPx)
	if kernelSize == 1 {
		return density.Clone(), nil
	}

	src, err := conversion.DensityToMat(density)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := safe.NewMat(src.Rows(), src.Cols(), gocv.MatTypeCV32FC1, "smoothed")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}
	defer dst.Close()

	gocv.GaussianBlur(src.GetMat(), dst.GetMatPtr(), image.Point{X: kernelSize, Y: kernelSize},
		sigmaPx, sigmaPx, gocv.BorderConstant)

	return conversion.MatToDensity(dst)
}
