package heatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateCountsDuplicates(t *testing.T) {
	points := []Point{{X: 1, Y: 2}, {X: 1, Y: 2}, {X: 3, Y: 0}}

	density, accepted, err := Accumulate(points, 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, accepted)
	assert.Equal(t, float32(2), density.At(1, 2))
	assert.Equal(t, float32(1), density.At(3, 0))
	assert.Equal(t, float32(0), density.At(0, 0))
}

func TestAccumulateDropsOutOfBounds(t *testing.T) {
	points := []Point{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 4, Y: 0},
		{X: 0, Y: 3},
		{X: 9999, Y: 9999},
		{X: 3, Y: 2},
	}

	density, accepted, err := Accumulate(points, 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1.0, density.Sum())
	assert.Equal(t, float32(1), density.At(3, 2))
}

func TestAccumulateBoundsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 50, 30

	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(500)
		points := make([]Point, n)
		inside := 0
		for i := range points {
			points[i] = Point{X: rng.Intn(80) - 15, Y: rng.Intn(60) - 15}
			if points[i].X >= 0 && points[i].X < w && points[i].Y >= 0 && points[i].Y < h {
				inside++
			}
		}

		density, accepted, err := Accumulate(points, w, h)
		require.NoError(t, err)
		assert.Equal(t, inside, accepted)
		assert.Equal(t, float64(inside), density.Sum())
	}
}

func TestAccumulateRejectsInvalidDimensions(t *testing.T) {
	_, _, err := Accumulate(nil, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, _, err = Accumulate(nil, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestAccumulateEmpty(t *testing.T) {
	density, accepted, err := Accumulate(nil, 3, 3)
	require.NoError(t, err)
	assert.Zero(t, accepted)
	assert.Zero(t, density.Sum())
}
