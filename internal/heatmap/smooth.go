package heatmap

import (
	"context"
	"fmt"
	"math"
)

// Smoother replaces a density raster with a smoothed one of identical size.
type Smoother interface {
	Smooth(ctx context.Context, density *DensityMap) (*DensityMap, error)
}

// SigmaPixels converts a visual angle in degrees to a pixel standard deviation.
func SigmaPixels(sigmaDeg, pixelsPerDegree float64) float64 {
	return sigmaDeg * pixelsPerDegree
}

// KernelSize returns the kernel diameter for a pixel sigma: floor(4*sigma+1),
// raised to the next odd number when that is even. Non-positive sigmas give 1.
func KernelSize(sigmaPx float64) int {
	if !(sigmaPx > 0) {
		return 1
	}

	size := int(math.Floor(sigmaPx*4 + 1))
	if size%2 == 0 {
		size++
	}
	return size
}

// GaussianKernel returns normalized 1D weights of length KernelSize(sigmaPx).
func GaussianKernel(sigmaPx float64) []float32 {
	size := KernelSize(sigmaPx)
	if size == 1 {
		return []float32{1}
	}

	center := float64(size-1) / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		d := float64(i) - center
		weights[i] = math.Exp(-(d * d) / (2 * sigmaPx * sigmaPx))
		sum += weights[i]
	}

	kernel := make([]float32, size)
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// GaussianSmoother convolves with an isotropic separable Gaussian. Cells beyond
// the raster edge count as zero, so mass near the border is attenuated.
//
// Sigma and PixelsPerDegree must be positive; otherwise the kernel collapses to
// a single tap and Smooth returns a copy of its input.
type GaussianSmoother struct {
	Sigma           float64
	PixelsPerDegree float64
}

func NewGaussianSmoother(sigma, pixelsPerDegree float64) *GaussianSmoother {
	return &GaussianSmoother{Sigma: sigma, PixelsPerDegree: pixelsPerDegree}
}

func (g *GaussianSmoother) Smooth(ctx context.Context, density *DensityMap) (*DensityMap, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if density == nil {
		return nil, fmt.Errorf("density map is nil")
	}

	kernel := GaussianKernel(SigmaPixels(g.Sigma, g.PixelsPerDegree))
	if len(kernel) == 1 {
		return density.Clone(), nil
	}

	tmp := convolveRows(density, kernel)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return convolveCols(tmp, kernel), nil
}

func convolveRows(src *DensityMap, kernel []float32) *DensityMap {
	w, h := src.Width, src.Height
	radius := len(kernel) / 2
	dst := &DensityMap{Width: w, Height: h, Pix: make([]float32, len(src.Pix))}

	for y := 0; y < h; y++ {
		row := src.Pix[y*w : (y+1)*w]
		out := dst.Pix[y*w : (y+1)*w]
		for x, v := range row {
			if v == 0 {
				continue
			}
			lo := max(0, x-radius)
			hi := min(w-1, x+radius)
			for xx := lo; xx <= hi; xx++ {
				out[xx] += v * kernel[xx-x+radius]
			}
		}
	}

	return dst
}

func convolveCols(src *DensityMap, kernel []float32) *DensityMap {
	w, h := src.Width, src.Height
	radius := len(kernel) / 2
	dst := &DensityMap{Width: w, Height: h, Pix: make([]float32, len(src.Pix))}

	for y := 0; y < h; y++ {
		row := src.Pix[y*w : (y+1)*w]
		if isZero(row) {
			continue
		}
		lo := max(0, y-radius)
		hi := min(h-1, y+radius)
		for yy := lo; yy <= hi; yy++ {
			weight := kernel[yy-y+radius]
			out := dst.Pix[yy*w : (yy+1)*w]
			for x, v := range row {
				out[x] += v * weight
			}
		}
	}

	return dst
}

func isZero(row []float32) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}
