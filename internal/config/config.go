package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	DefaultWidth           = 1920
	DefaultHeight          = 1080
	DefaultSigma           = 2.0
	DefaultPixelsPerDegree = 60.0
	DefaultBlendRatio      = 0.5
	DefaultOutputPath      = "./salmap.jpg"
	DefaultJPEGQuality     = 95

	BackendGo     = "go"
	BackendOpenCV = "opencv"
)

var (
	ErrMissingFixations = errors.New("a path to a fixation list file must be given")
	ErrInvalid          = errors.New("invalid configuration")
)

// Config holds everything a single saliency map run needs.
type Config struct {
	FixationsPath   string  `toml:"fixations"`
	ImagePath       string  `toml:"img_path"`
	Sigma           float64 `toml:"sigma"`
	PixelsPerDegree float64 `toml:"px2deg"`
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	BlendRatio      float64 `toml:"blend"`
	OutputPath      string  `toml:"output"`
	Backend         string  `toml:"backend"`
	JPEGQuality     int     `toml:"quality"`
	Preview         bool    `toml:"preview"`
	LogLevel        string  `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		Sigma:           DefaultSigma,
		PixelsPerDegree: DefaultPixelsPerDegree,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		BlendRatio:      DefaultBlendRatio,
		OutputPath:      DefaultOutputPath,
		Backend:         BackendGo,
		JPEGQuality:     DefaultJPEGQuality,
		LogLevel:        levelFromEnv(),
	}
}

// RegisterFlags binds the command line options to c. Current field values
// become the flag defaults.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ImagePath, "img_path", c.ImagePath, "Path to image to blend with saliency map")
	fs.Float64Var(&c.Sigma, "sigma", c.Sigma, "Sigma (in degrees of field of view) for the Gaussian filter")
	fs.Float64Var(&c.PixelsPerDegree, "px2deg", c.PixelsPerDegree, "Pixel to degree ratio to apply")
	fs.IntVar(&c.Width, "width", c.Width, "Width of output image in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "Height of output image in pixels")
	fs.Float64Var(&c.BlendRatio, "blend", c.BlendRatio, "Saliency map to stimulus blend ratio")
	fs.StringVarP(&c.OutputPath, "output", "o", c.OutputPath, "Output image path; the extension selects the encoder")
	fs.StringVar(&c.Backend, "backend", c.Backend, "Smoothing and blending backend: go or opencv")
	fs.IntVar(&c.JPEGQuality, "quality", c.JPEGQuality, "JPEG quality for .jpg outputs")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "Show the result in a window")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
}

// LoadFile overlays the TOML file at path onto c. Flags in fs that were set
// explicitly keep their command line value.
func (c *Config) LoadFile(path string, fs *pflag.FlagSet) error {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".toml" {
		return fmt.Errorf("config file must have .toml extension, got %q", ext)
	}

	explicit := make(map[string]string)
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) {
			explicit[f.Name] = f.Value.String()
		})
	}

	md, err := toml.DecodeFile(cleanPath, c)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalid, cleanPath, undecoded)
	}

	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("failed to restore flag --%s: %w", name, err)
		}
	}

	return nil
}

// Validate rejects configurations the pipeline cannot run with. Non-positive
// sigma or px2deg is left to the caller; see Warnings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FixationsPath) == "" {
		return ErrMissingFixations
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: output size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.BlendRatio < 0 || c.BlendRatio > 1 {
		return fmt.Errorf("%w: blend ratio %v outside [0, 1]", ErrInvalid, c.BlendRatio)
	}
	if c.Backend != BackendGo && c.Backend != BackendOpenCV {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality %d outside [1, 100]", ErrInvalid, c.JPEGQuality)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Warnings lists accepted but suspicious settings.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Sigma <= 0 || c.PixelsPerDegree <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"sigma %v and px2deg %v must both be positive; smoothing is disabled", c.Sigma, c.PixelsPerDegree))
	}
	return warnings
}

func (c *Config) Blending() bool {
	return c.ImagePath != ""
}

func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

func levelFromEnv() string {
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "info", "warn", "error":
		return os.Getenv("LOG_LEVEL")
	default:
		if os.Getenv("DEBUG") == "1" {
			return "debug"
		}
		return "info"
	}
}
