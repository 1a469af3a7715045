package pipeline

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"salmap/internal/heatmap"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type imageLoader struct {
	logger Logger
}

func NewLoader(log Logger) StimulusLoader {
	return &imageLoader{logger: log}
}

// Load opens, decodes and closes the image at path and returns it as RGB.
func (l *imageLoader) Load(path string) (*heatmap.ColorImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("problem opening image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}

	colorImg, err := heatmap.FromImage(img)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
		"path":      path,
		"extension": strings.ToLower(filepath.Ext(path)),
		"format":    format,
		"width":     colorImg.Width,
		"height":    colorImg.Height,
	})

	return colorImg, nil
}
