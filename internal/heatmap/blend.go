package heatmap

import (
	"context"
	"fmt"
	"math"
)

// Blender composites a colorized heatmap over a stimulus image.
type Blender interface {
	Blend(ctx context.Context, heat, stimulus *ColorImage, alpha float64) (*ColorImage, error)
}

// CheckBlendInputs verifies both images exist and share a size.
func CheckBlendInputs(heat, stimulus *ColorImage) error {
	if heat == nil || stimulus == nil {
		return fmt.Errorf("blend requires both a heatmap and a stimulus image")
	}
	if heat.Width != stimulus.Width || heat.Height != stimulus.Height {
		return fmt.Errorf("%w: heatmap %dx%d, stimulus %dx%d",
			ErrDimensionMismatch, heat.Width, heat.Height, stimulus.Width, stimulus.Height)
	}
	return nil
}

// LinearBlender computes heat*alpha + stimulus*(1-alpha) per channel, rounding
// half to even and saturating to 8 bits.
type LinearBlender struct{}

func (LinearBlender) Blend(ctx context.Context, heat, stimulus *ColorImage, alpha float64) (*ColorImage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := CheckBlendInputs(heat, stimulus); err != nil {
		return nil, err
	}

	if stimulus.Order != heat.Order {
		stimulus = stimulus.WithOrder(heat.Order)
	}

	out := &ColorImage{
		Width:  heat.Width,
		Height: heat.Height,
		Order:  heat.Order,
		Pix:    make([]uint8, len(heat.Pix)),
	}

	beta := 1 - alpha
	for i := range heat.Pix {
		out.Pix[i] = saturate(float64(heat.Pix[i])*alpha + float64(stimulus.Pix[i])*beta)
	}
	return out, nil
}

func saturate(v float64) uint8 {
	r := math.RoundToEven(v)
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}
