// Package heatmap turns fixation points into a colorized saliency raster.
//
// Every stage takes its input by pointer and returns a freshly allocated result,
// so callers can hand literal rasters to any stage in isolation.
package heatmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrInvalidDimensions = errors.New("invalid raster dimensions")
	ErrDimensionMismatch = errors.New("raster dimensions do not match")
)

// Point is a fixation sample in output pixel coordinates.
type Point struct {
	X int
	Y int
}

// DensityMap is a single channel float raster stored row-major.
type DensityMap struct {
	Width  int
	Height int
	Pix    []float32
}

func NewDensityMap(width, height int) (*DensityMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return &DensityMap{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height),
	}, nil
}

func (d *DensityMap) At(x, y int) float32 {
	return d.Pix[y*d.Width+x]
}

// Sum returns the total mass of the raster.
func (d *DensityMap) Sum() float64 {
	var total float64
	for _, v := range d.Pix {
		total += float64(v)
	}
	return total
}

// Max returns the largest cell value, or 0 for an all-zero or empty raster.
func (d *DensityMap) Max() float32 {
	var maxVal float32
	for _, v := range d.Pix {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

func (d *DensityMap) Clone() *DensityMap {
	pix := make([]float32, len(d.Pix))
	copy(pix, d.Pix)
	return &DensityMap{Width: d.Width, Height: d.Height, Pix: pix}
}

// ChannelOrder is the byte order of the three color channels in a ColorImage.
type ChannelOrder int

const (
	RGB ChannelOrder = iota
	BGR
)

func (o ChannelOrder) String() string {
	switch o {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", int(o))
	}
}

// ColorImage is a packed 3 channel 8-bit raster.
type ColorImage struct {
	Width  int
	Height int
	Order  ChannelOrder
	Pix    []uint8
}

func NewColorImage(width, height int, order ChannelOrder) (*ColorImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return &ColorImage{
		Width:  width,
		Height: height,
		Order:  order,
		Pix:    make([]uint8, width*height*3),
	}, nil
}

// RGBAt returns the pixel at (x, y) as r, g, b regardless of storage order.
func (c *ColorImage) RGBAt(x, y int) (uint8, uint8, uint8) {
	i := (y*c.Width + x) * 3
	if c.Order == BGR {
		return c.Pix[i+2], c.Pix[i+1], c.Pix[i]
	}
	return c.Pix[i], c.Pix[i+1], c.Pix[i+2]
}

func (c *ColorImage) SetRGB(x, y int, r, g, b uint8) {
	i := (y*c.Width + x) * 3
	if c.Order == BGR {
		r, b = b, r
	}
	c.Pix[i] = r
	c.Pix[i+1] = g
	c.Pix[i+2] = b
}

// WithOrder returns a copy stored in the requested channel order.
func (c *ColorImage) WithOrder(order ChannelOrder) *ColorImage {
	out := &ColorImage{
		Width:  c.Width,
		Height: c.Height,
		Order:  order,
		Pix:    make([]uint8, len(c.Pix)),
	}
	copy(out.Pix, c.Pix)

	if order != c.Order {
		for i := 0; i+2 < len(out.Pix); i += 3 {
			out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
		}
	}
	return out
}

// ToImage converts to an opaque *image.RGBA.
func (c *ColorImage) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, b := c.RGBAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// FromImage converts any image to an RGB ColorImage. Alpha is dropped without
// premultiplying: colors come out as stored, the way OpenCV reads a PNG.
func FromImage(img image.Image) (*ColorImage, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	out, err := NewColorImage(bounds.Dx(), bounds.Dy(), RGB)
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < out.Height; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride+(bounds.Min.X-src.Rect.Min.X)*4:]
			for x := 0; x < out.Width; x++ {
				out.SetRGB(x, y, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return out, nil
	}

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			out.SetRGB(x, y, c.R, c.G, c.B)
		}
	}

	return out, nil
}
