package filters

import (
	"context"
	"fmt"

	"salmap/internal/heatmap"
	"salmap/internal/opencv/conversion"
	"salmap/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// WeightedBlender composites with cv::addWeighted, which rounds and saturates
// to 8 bits.
type WeightedBlender struct{}

func NewWeightedBlender() *WeightedBlender {
	return &WeightedBlender{}
}

func (b *WeightedBlender) Blend(ctx context.Context, heat, stimulus *heatmap.ColorImage, alpha float64) (*heatmap.ColorImage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := heatmap.CheckBlendInputs(heat, stimulus); err != nil {
		return nil, err
	}

	heatMat, err := conversion.ColorToMat(heat)
	if err != nil {
		return nil, err
	}
	defer heatMat.Close()

	stimMat, err := conversion.ColorToMat(stimulus)
	if err != nil {
		return nil, err
	}
	defer stimMat.Close()

	if err := safe.ValidateSameSize(heatMat, stimMat, "add weighted"); err != nil {
		return nil, err
	}

	dst, err := safe.NewMat(heatMat.Rows(), heatMat.Cols(), gocv.MatTypeCV8UC3, "blended")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}
	defer dst.Close()

	gocv.AddWeighted(heatMat.GetMat(), alpha, stimMat.GetMat(), 1-alpha, 0, dst.GetMatPtr())

	return conversion.MatToColor(dst, heat.Order)
}
