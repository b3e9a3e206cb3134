package population

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validConfig() Config {
	return Config{
		Population:   10,
		Capacity:     3,
		Horizon:      20,
		SamplePeriod: 1,
		Seed:         7,
		AtHome:       Range{1, 4},
		Sickness:     Range{5, 5},
		Shopping:     Range{0, 1},
		Spend:        Range{10, 20},
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPresets_AllNamedAndValid(t *testing.T) {
	// GIVEN the embedded presets
	names := PresetNames()

	// THEN all three model variants are present, sorted, and valid
	assert.Equal(t, []string{"covid", "store", "store-with-covid"}, names)
	for _, name := range names {
		cfg, err := Preset(name)
		require.NoError(t, err, name)
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestPreset_Store_HasNoDisease(t *testing.T) {
	cfg, err := Preset("store")
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Population)
	assert.Equal(t, 30, cfg.Capacity)
	assert.Zero(t, cfg.Infection)
	assert.Zero(t, cfg.InitialInfection)
	assert.Equal(t, Range{10, 200}, cfg.Spend)
	assert.Equal(t, Range{14, 14}, cfg.Sickness, "scalar expands to a degenerate range")
}

func TestPreset_Unknown_ListsValidNames(t *testing.T) {
	_, err := Preset("mall")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store-with-covid")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errSub string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero population", func(c *Config) { c.Population = 0 }, "population"},
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "capacity"},
		{"capacity above population", func(c *Config) { c.Capacity = 11 }, "capacity"},
		{"capacity equal population", func(c *Config) { c.Capacity = 10 }, ""},
		{"negative horizon", func(c *Config) { c.Horizon = -1 }, "horizon"},
		{"zero horizon", func(c *Config) { c.Horizon = 0 }, ""},
		{"zero sample period", func(c *Config) { c.SamplePeriod = 0 }, "sample_period"},
		{"probability above one", func(c *Config) { c.Infection = 1.5 }, "p_infection"},
		{"negative probability", func(c *Config) { c.Death = -0.1 }, "p_death"},
		{"probability one", func(c *Config) { c.InitialInfection = 1 }, ""},
		{"inverted range", func(c *Config) { c.AtHome = Range{5, 1} }, "at_home"},
		{"negative range", func(c *Config) { c.Spend = Range{-1, 3} }, "spend"},
		{"full-span spend", func(c *Config) { c.Spend = Range{0, math.MaxInt64} }, ""},
		{"duration past max time", func(c *Config) { c.AtHome = Range{0, math.MaxInt64 - 19} }, "at_home"},
		{"duration up to max time", func(c *Config) { c.Sickness = Range{1, math.MaxInt64 - 20} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.errSub == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestLoadConfig_OverlaysOnBase(t *testing.T) {
	// GIVEN a file overriding population and two ranges
	path := writeYAML(t, "population: 50\nat_home: [2, 3]\nspend: 5\n")

	// WHEN loaded onto a base config
	cfg, err := LoadConfig(path, validConfig())

	// THEN overridden fields change and the rest keep base values
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Population)
	assert.Equal(t, Range{2, 3}, cfg.AtHome)
	assert.Equal(t, Range{5, 5}, cfg.Spend)
	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, Range{5, 5}, cfg.Sickness)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "populaton: 50\n"},
		{"three-element range", "at_home: [1, 2, 3]\n"},
		{"non-numeric range", "spend: [a, b]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeYAML(t, tt.content), validConfig())
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), validConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario config")
}

func TestRange_MarshalYAML_FlowSequence(t *testing.T) {
	out, err := yaml.Marshal(struct {
		R Range `yaml:"r"`
	}{R: Range{1, 5}})

	require.NoError(t, err)
	assert.Equal(t, "r: [1, 5]\n", string(out))
}
