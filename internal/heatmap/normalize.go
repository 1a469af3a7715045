package heatmap

// Normalize divides every cell by the global maximum and returns the result
// with the maximum that was used. An all-zero raster normalizes to all zeros.
//
// A single dense cluster compresses the range of everything else; this is a
// single global pass on purpose, not per tile.
func Normalize(density *DensityMap) (*DensityMap, float32) {
	out := &DensityMap{
		Width:  density.Width,
		Height: density.Height,
		Pix:    make([]float32, len(density.Pix)),
	}

	maxVal := density.Max()
	if maxVal == 0 {
		return out, 0
	}

	for i, v := range density.Pix {
		out.Pix[i] = v / maxVal
	}
	return out, maxVal
}
