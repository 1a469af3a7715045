package main

import (
	"bytes"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"salmap/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandWritesOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	fixations := filepath.Join(dir, "fix.csv")
	require.NoError(t, os.WriteFile(fixations, []byte("x,y\n10,10\n10,10\n30,20\n9999,9999\nbad\n"), 0644))
	output := filepath.Join(dir, "out.png")

	stdout, _, err := executeRoot(t, fixations, "--width", "64", "--height", "48", "--sigma", "0.1", "--px2deg", "30", "-o", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "3 fixation points")
	assert.Contains(t, stdout, "Output: "+output)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestRootCommandRequiresFixationList(t *testing.T) {
	_, stderr, err := executeRoot(t)
	assert.ErrorIs(t, err, config.ErrMissingFixations)
	assert.Contains(t, stderr, "fixation list")
}

func TestRootCommandUnreadableFixationList(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	_, _, err := executeRoot(t, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRootCommandConfigFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	fixations := filepath.Join(dir, "fix.csv")
	require.NoError(t, os.WriteFile(fixations, []byte("x,y\n5,5\n"), 0644))
	output := filepath.Join(dir, "out.bmp")
	cfgPath := filepath.Join(dir, "salmap.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("width = 20\nheight = 10\nsigma = 0.1\npx2deg = 20.0\noutput = \""+filepath.ToSlash(output)+"\"\n"), 0644))

	stdout, _, err := executeRoot(t, fixations, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 fixation points")

	_, err = os.Stat(output)
	assert.NoError(t, err)
}
