package heatmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(t *testing.T, w, h int, order ChannelOrder, r, g, b uint8) *ColorImage {
	t.Helper()
	img, err := NewColorImage(w, h, order)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGB(x, y, r, g, b)
		}
	}
	return img
}

func TestLinearBlendIdentity(t *testing.T) {
	heat := solidImage(t, 3, 2, RGB, 200, 10, 90)
	stim := solidImage(t, 3, 2, RGB, 5, 250, 128)

	out, err := LinearBlender{}.Blend(context.Background(), heat, stim, 1)
	require.NoError(t, err)
	assert.Equal(t, heat.Pix, out.Pix)

	out, err = LinearBlender{}.Blend(context.Background(), heat, stim, 0)
	require.NoError(t, err)
	assert.Equal(t, stim.Pix, out.Pix)
}

func TestLinearBlendHalf(t *testing.T) {
	heat := solidImage(t, 1, 1, RGB, 200, 11, 0)
	stim := solidImage(t, 1, 1, RGB, 100, 0, 255)

	out, err := LinearBlender{}.Blend(context.Background(), heat, stim, 0.5)
	require.NoError(t, err)

	r, g, b := out.RGBAt(0, 0)
	// 5.5 and 127.5 round half to even
	assert.Equal(t, [3]uint8{150, 6, 128}, [3]uint8{r, g, b})
}

func TestLinearBlendDoesNotMutateInputs(t *testing.T) {
	heat := solidImage(t, 2, 2, RGB, 10, 20, 30)
	stim := solidImage(t, 2, 2, RGB, 40, 50, 60)
	heatBefore := append([]uint8(nil), heat.Pix...)
	stimBefore := append([]uint8(nil), stim.Pix...)

	_, err := LinearBlender{}.Blend(context.Background(), heat, stim, 0.3)
	require.NoError(t, err)

	assert.Equal(t, heatBefore, heat.Pix)
	assert.Equal(t, stimBefore, stim.Pix)
}

func TestLinearBlendPermutesStimulusOrder(t *testing.T) {
	heat := solidImage(t, 2, 1, BGR, 255, 0, 0)
	stim := solidImage(t, 2, 1, RGB, 0, 0, 255)

	out, err := LinearBlender{}.Blend(context.Background(), heat, stim, 0)
	require.NoError(t, err)

	assert.Equal(t, BGR, out.Order)
	r, g, b := out.RGBAt(1, 0)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})
}

func TestLinearBlendDimensionMismatch(t *testing.T) {
	heat := solidImage(t, 4, 3, RGB, 1, 2, 3)
	stim := solidImage(t, 3, 4, RGB, 1, 2, 3)

	_, err := LinearBlender{}.Blend(context.Background(), heat, stim, 0.5)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestColorImageRoundTripThroughImage(t *testing.T) {
	src := solidImage(t, 3, 2, BGR, 12, 34, 56)

	back, err := FromImage(src.ToImage())
	require.NoError(t, err)

	assert.Equal(t, RGB, back.Order)
	assert.Equal(t, src.WithOrder(RGB).Pix, back.Pix)
}
