package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/vrdesk/anchor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.cfg"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Equal(t, "", cfg.Output)
	assert.Equal(t, anchor.Flat, cfg.Mode)
	assert.Equal(t, float32(0.7), cfg.Distance)
	assert.True(t, cfg.ShowWindow)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("DP-1\ncurved\n1.25\ndisabled\n"))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Output:     "DP-1",
		Mode:       anchor.Curved,
		Distance:   1.25,
		ShowWindow: false,
	}, cfg)
}

func TestParseEmptyOutput(t *testing.T) {
	cfg, err := Parse([]byte("\nflat\n0.7\nenabled"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Output)
	assert.True(t, cfg.ShowWindow)
}

func TestParseWindowsLineEndings(t *testing.T) {
	cfg, err := Parse([]byte("HDMI-1\r\nflat\r\n2\r\nenabled\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "HDMI-1", cfg.Output)
	assert.Equal(t, float32(2), cfg.Distance)
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"too short":      "DP-1\nflat\n",
		"bad mode":       "DP-1\nround\n0.7\nenabled\n",
		"bad distance":   "DP-1\nflat\nnear\nenabled\n",
		"nan distance":   "DP-1\nflat\nnan\nenabled\n",
		"inf distance":   "DP-1\nflat\n-Inf\nenabled\n",
		"bad visibility": "DP-1\nflat\n0.7\nmaybe\n",
		"empty":          "",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoadMalformedNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrdesktop.cfg")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), path)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrdesktop.cfg")

	cfg := Config{
		Output:     "DP-2",
		Mode:       anchor.Curved,
		Distance:   -0.3,
		ShowWindow: true,
	}

	require.NoError(t, Save(path, cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DP-2\ncurved\n-0.3\nenabled\n", string(content))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsLineBreakInOutput(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "vrdesktop.cfg"), Config{Output: "a\nb"})
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "vrdesktop", "vrdesktop.cfg"), path)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
