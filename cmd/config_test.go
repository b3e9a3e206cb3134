package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/storesim/sim/population"
)

// parseScenarioFlags rebinds the scenario flags to a fresh set, resetting
// every package-level value to its default, then parses args.
func parseScenarioFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerScenarioFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestResolveConfig_DefaultsToStorePreset(t *testing.T) {
	// GIVEN no flags
	fs := parseScenarioFlags(t)

	// WHEN resolved
	cfg, err := resolveConfig(fs)

	// THEN the store preset is used untouched
	require.NoError(t, err)
	want, err := population.Preset("store")
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
}

func TestResolveConfig_ExplicitFlagsOverridePreset(t *testing.T) {
	// GIVEN the covid preset with two explicit overrides
	fs := parseScenarioFlags(t, "--preset", "covid", "--population", "40", "--p-death", "0.5")

	cfg, err := resolveConfig(fs)

	// THEN only the explicitly set fields change
	require.NoError(t, err)
	base, err := population.Preset("covid")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Population)
	assert.Equal(t, 0.5, cfg.Death)
	assert.Equal(t, base.Horizon, cfg.Horizon)
	assert.Equal(t, base.Infection, cfg.Infection)
	assert.Equal(t, base.Seed, cfg.Seed)
}

func TestResolveConfig_FlagsBeatConfigFileBeatsPreset(t *testing.T) {
	// GIVEN a config file setting capacity and seed
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 10\nseed: 7\n"), 0o644))

	// WHEN the seed is also set on the command line
	fs := parseScenarioFlags(t, "--config", path, "--seed", "99")
	cfg, err := resolveConfig(fs)

	// THEN capacity comes from the file and seed from the flag
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"--preset", "mall"}},
		{"capacity above population", []string{"--capacity", "1000"}},
		{"probability out of range", []string{"--p-infection", "2"}},
		{"missing config file", []string{"--config", "/nonexistent/scenario.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveConfig(parseScenarioFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}
