package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")

	cfg := Default()
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, 2.0, cfg.Sigma)
	assert.Equal(t, 60.0, cfg.PixelsPerDegree)
	assert.Equal(t, 0.5, cfg.BlendRatio)
	assert.Equal(t, "./salmap.jpg", cfg.OutputPath)
	assert.Equal(t, BackendGo, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Blending())
}

func TestDefaultLogLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")
	assert.Equal(t, "debug", Default().LogLevel)

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, "warn", Default().LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.FixationsPath = "fix.csv"
		c.LogLevel = "info"
		return c
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.FixationsPath = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingFixations)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -5 }},
		{"blend above one", func(c *Config) { c.BlendRatio = 1.1 }},
		{"blend below zero", func(c *Config) { c.BlendRatio = -0.1 }},
		{"backend", func(c *Config) { c.Backend = "cuda" }},
		{"quality", func(c *Config) { c.JPEGQuality = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestWarningsForDegenerateSigma(t *testing.T) {
	c := Default()
	assert.Empty(t, c.Warnings())

	c.Sigma = 0
	assert.Len(t, c.Warnings(), 1)

	c.Sigma = 2
	c.PixelsPerDegree = -1
	assert.Len(t, c.Warnings(), 1)
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "DEBUG"
	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}

func TestRegisterFlags(t *testing.T) {
	c := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--sigma", "1.5", "--blend", ".7", "--img_path", "stim.jpg", "--width", "800"}))

	assert.Equal(t, 1.5, c.Sigma)
	assert.Equal(t, 0.7, c.BlendRatio)
	assert.Equal(t, "stim.jpg", c.ImagePath)
	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 1080, c.Height)
	assert.True(t, c.Blending())
}

func TestLoadFileFlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salmap.toml")
	contents := `
sigma = 3.0
px2deg = 40.0
width = 640
height = 480
output = "out.png"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	c := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--width", "1000"}))

	require.NoError(t, c.LoadFile(path, fs))

	assert.Equal(t, 3.0, c.Sigma)
	assert.Equal(t, 40.0, c.PixelsPerDegree)
	assert.Equal(t, 1000, c.Width)
	assert.Equal(t, 480, c.Height)
	assert.Equal(t, "out.png", c.OutputPath)
	assert.Equal(t, 0.5, c.BlendRatio)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	c := Default()
	assert.Error(t, c.LoadFile(filepath.Join(dir, "salmap.json"), nil))
	assert.Error(t, c.LoadFile(filepath.Join(dir, "missing.toml"), nil))

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("colour = \"red\"\n"), 0644))
	assert.ErrorIs(t, c.LoadFile(unknown, nil), ErrInvalid)
}
