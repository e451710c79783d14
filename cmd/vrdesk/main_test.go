package main

import (
	"testing"

	"github.com/oliverbestmann/vrdesk/anchor"
	"github.com/oliverbestmann/vrdesk/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideOnlyWhenGiven(t *testing.T) {
	stored := config.Config{
		Output:     "DP-1",
		Mode:       anchor.Curved,
		Distance:   -0.3,
		ShowWindow: true,
	}

	f, explicit, err := parseFlags([]string{"vrdesk"})
	require.NoError(t, err)
	cfg, err := applyFlags(stored, f, explicit)
	require.NoError(t, err)
	assert.Equal(t, stored, cfg)

	f, explicit, err = parseFlags([]string{"vrdesk", "-output", "HDMI-1", "-n", "-d", "1.5"})
	require.NoError(t, err)

	cfg, err = applyFlags(stored, f, explicit)
	require.NoError(t, err)
	assert.Equal(t, "HDMI-1", cfg.Output)
	assert.False(t, cfg.ShowWindow)
	assert.Equal(t, float32(1.5), cfg.Distance)
	assert.Equal(t, anchor.Curved, cfg.Mode)
}

func TestCurvedFlag(t *testing.T) {
	f, explicit, err := parseFlags([]string{"vrdesk", "-c"})
	require.NoError(t, err)

	cfg, err := applyFlags(config.Default(), f, explicit)
	require.NoError(t, err)
	assert.Equal(t, anchor.Curved, cfg.Mode)
}

func TestNonFiniteDistanceFlag(t *testing.T) {
	for _, value := range []string{"NaN", "inf", "-Inf"} {
		f, explicit, err := parseFlags([]string{"vrdesk", "-d", value})
		require.NoError(t, err)

		_, err = applyFlags(config.Default(), f, explicit)
		assert.Error(t, err, value)
	}
}
