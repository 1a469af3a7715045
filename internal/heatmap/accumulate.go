package heatmap

// Accumulate rasterizes points into a width x height count map. Points outside
// the raster are dropped without error; the second return value is the number
// of points that landed inside.
func Accumulate(points []Point, width, height int) (*DensityMap, int, error) {
	density, err := NewDensityMap(width, height)
	if err != nil {
		return nil, 0, err
	}

	accepted := 0
	for _, p := range points {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		density.Pix[p.Y*width+p.X]++
		accepted++
	}

	return density, accepted, nil
}
