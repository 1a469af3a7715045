package conversion

import (
	"fmt"

	"salmap/internal/heatmap"
	"salmap/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// DensityToMat copies a density raster into a new CV_32FC1 Mat.
func DensityToMat(density *heatmap.DensityMap) (*safe.Mat, error) {
	if density == nil {
		return nil, fmt.Errorf("density map is nil")
	}

	mat, err := safe.NewMat(density.Height, density.Width, gocv.MatTypeCV32FC1, "density")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	data, err := mat.Float32Data()
	if err != nil {
		mat.Close()
		return nil, err
	}
	copy(data, density.Pix)

	return mat, nil
}

// MatToDensity copies a CV_32FC1 Mat into a new density raster.
func MatToDensity(src *safe.Mat) (*heatmap.DensityMap, error) {
	if err := safe.ValidateMatType(src, gocv.MatTypeCV32FC1, "Mat to density conversion"); err != nil {
		return nil, err
	}

	density, err := heatmap.NewDensityMap(src.Cols(), src.Rows())
	if err != nil {
		return nil, err
	}

	data, err := src.Float32Data()
	if err != nil {
		return nil, err
	}
	if len(data) != len(density.Pix) {
		return nil, fmt.Errorf("Mat holds %d floats, want %d", len(data), len(density.Pix))
	}
	copy(density.Pix, data)

	return density, nil
}

// ColorToMat copies a color raster into a new CV_8UC3 Mat in OpenCV's BGR order.
func ColorToMat(img *heatmap.ColorImage) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("color image is nil")
	}

	mat, err := safe.NewMat(img.Height, img.Width, gocv.MatTypeCV8UC3, "color")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	data, err := mat.Uint8Data()
	if err != nil {
		mat.Close()
		return nil, err
	}

	if img.Order != heatmap.BGR {
		img = img.WithOrder(heatmap.BGR)
	}
	copy(data, img.Pix)

	return mat, nil
}

// MatToColor copies a BGR CV_8UC3 Mat into a color raster with the given order.
func MatToColor(src *safe.Mat, order heatmap.ChannelOrder) (*heatmap.ColorImage, error) {
	if err := safe.ValidateMatType(src, gocv.MatTypeCV8UC3, "Mat to color conversion"); err != nil {
		return nil, err
	}

	img, err := heatmap.NewColorImage(src.Cols(), src.Rows(), heatmap.BGR)
	if err != nil {
		return nil, err
	}

	data, err := src.Uint8Data()
	if err != nil {
		return nil, err
	}
	if len(data) != len(img.Pix) {
		return nil, fmt.Errorf("Mat holds %d bytes, want %d", len(data), len(img.Pix))
	}
	copy(img.Pix, data)

	if order != heatmap.BGR {
		return img.WithOrder(order), nil
	}
	return img, nil
}
