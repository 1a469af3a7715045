package heatmap

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// rowsPerBand keeps goroutine count sane on tall rasters.
const rowsPerBand = 64

// Colorize maps a normalized raster through the palette. The palette is RGB;
// order selects how the channels are laid out in the returned image.
func Colorize(ctx context.Context, normalized *DensityMap, palette Palette, order ChannelOrder) (*ColorImage, error) {
	if normalized == nil {
		return nil, fmt.Errorf("normalized map is nil")
	}

	out, err := NewColorImage(normalized.Width, normalized.Height, order)
	if err != nil {
		return nil, err
	}

	// palette index of the destination byte for each source channel
	perm := [3]int{0, 1, 2}
	if order == BGR {
		perm = [3]int{2, 1, 0}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for start := 0; start < normalized.Height; start += rowsPerBand {
		start := start
		end := min(start+rowsPerBand, normalized.Height)
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			colorizeRows(normalized, &palette, perm, out, start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func colorizeRows(src *DensityMap, palette *Palette, perm [3]int, dst *ColorImage, start, end int) {
	w := src.Width
	for i := start * w; i < end*w; i++ {
		rgb := palette.At(src.Pix[i])
		px := dst.Pix[i*3 : i*3+3]
		for c := 0; c < 3; c++ {
			px[perm[c]] = Quantize(rgb[c])
		}
	}
}
