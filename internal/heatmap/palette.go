package heatmap

import (
	"fmt"
	"math"
)

// PaletteSize is the number of stops in a Palette.
const PaletteSize = 33

// Palette is an ordered table of RGB stops with channels in [0, 1]. Stop 0 is
// the color for zero density, the last stop the color for the maximum.
type Palette [PaletteSize][3]float32

// Coolwarm returns the 33 stop matplotlib coolwarm table. Each call returns a
// new value so callers never share a mutable table.
func Coolwarm() Palette {
	return Palette{
		{0.2298057, 0.298717966, 0.753683153},
		{0.26623388, 0.353094838, 0.801466763},
		{0.30386891, 0.406535296, 0.84495867},
		{0.342804478, 0.458757618, 0.883725899},
		{0.38301334, 0.50941904, 0.917387822},
		{0.424369608, 0.558148092, 0.945619588},
		{0.46666708, 0.604562568, 0.968154911},
		{0.509635204, 0.648280772, 0.98478814},
		{0.552953156, 0.688929332, 0.995375608},
		{0.596262162, 0.726149107, 0.999836203},
		{0.639176211, 0.759599947, 0.998151185},
		{0.681291281, 0.788964712, 0.990363227},
		{0.722193294, 0.813952739, 0.976574709},
		{0.761464949, 0.834302879, 0.956945269},
		{0.798691636, 0.849786142, 0.931688648},
		{0.833466556, 0.860207984, 0.901068838},
		{0.865395197, 0.86541021, 0.865395561},
		{0.897787179, 0.848937047, 0.820880546},
		{0.924127593, 0.827384882, 0.774508472},
		{0.944468518, 0.800927443, 0.726736146},
		{0.958852946, 0.769767752, 0.678007945},
		{0.96732803, 0.734132809, 0.628751763},
		{0.969954137, 0.694266682, 0.579375448},
		{0.966811177, 0.650421156, 0.530263762},
		{0.958003065, 0.602842431, 0.481775914},
		{0.943660866, 0.551750968, 0.434243684},
		{0.923944917, 0.49730856, 0.387970225},
		{0.89904617, 0.439559467, 0.343229596},
		{0.869186849, 0.378313092, 0.300267182},
		{0.834620542, 0.312874446, 0.259301199},
		{0.795631745, 0.24128379, 0.220525627},
		{0.752534934, 0.157246067, 0.184115123},
		{0.705673158, 0.01555616, 0.150232812},
	}
}

// Validate reports channels outside [0, 1].
func (p *Palette) Validate() error {
	for i, stop := range p {
		for c, v := range stop {
			if v < 0 || v > 1 || math.IsNaN(float64(v)) {
				return fmt.Errorf("palette stop %d channel %d out of range: %v", i, c, v)
			}
		}
	}
	return nil
}

// At interpolates linearly between the two stops around v*32. Exact stop
// positions, including v == 1, resolve to a single stop.
func (p *Palette) At(v float32) [3]float32 {
	if !(v > 0) {
		v = 0
	} else if v > 1 {
		v = 1
	}

	idx := v * float32(PaletteSize-1)
	lo := int(math.Floor(float64(idx)))
	hi := int(math.Ceil(float64(idx)))
	frac := idx - float32(lo)

	var out [3]float32
	for c := 0; c < 3; c++ {
		out[c] = p[lo][c]*(1-frac) + p[hi][c]*frac
	}
	return out
}

// Quantize scales a [0, 1] channel to 8 bits by truncation.
func Quantize(c float32) uint8 {
	v := c * 255
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
