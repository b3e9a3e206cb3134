package population

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

//go:embed presets.yaml
var presetsYAML []byte

// Range is a closed [Min, Max] interval of non-negative integers. In YAML it
// is written as a two-element sequence, or as a single scalar for Min == Max.
type Range struct {
	Min int64
	Max int64
}

// UnmarshalYAML accepts `[min, max]` or a bare integer.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v int64
		if err := value.Decode(&v); err != nil {
			return err
		}
		r.Min, r.Max = v, v
		return nil
	}
	var pair []int64
	if err := value.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: range must be [min, max], got %d values", value.Line, len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// MarshalYAML renders the range as a flow sequence.
func (r Range) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(r.Min, 10)},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(r.Max, 10)},
		},
	}, nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Config parameterizes one population run. All durations share the virtual
// time unit of Horizon.
type Config struct {
	Population       int     `yaml:"population"`
	Capacity         int     `yaml:"capacity"`
	Horizon          int64   `yaml:"horizon"`
	SamplePeriod     int64   `yaml:"sample_period"`
	Seed             int64   `yaml:"seed"`
	InitialInfection float64 `yaml:"p_initial_infection"`
	Infection        float64 `yaml:"p_infection"`
	Death            float64 `yaml:"p_death"`
	AtHome           Range   `yaml:"at_home"`
	Sickness         Range   `yaml:"sickness"`
	Shopping         Range   `yaml:"shopping"`
	Spend            Range   `yaml:"spend"`
}

// Validate checks every field against its documented domain.
func (c *Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("%w: population must be positive, got %d", ErrInvalidConfig, c.Population)
	}
	if c.Capacity <= 0 || c.Capacity > c.Population {
		return fmt.Errorf("%w: capacity must be in [1, population=%d], got %d", ErrInvalidConfig, c.Population, c.Capacity)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be non-negative, got %d", ErrInvalidConfig, c.Horizon)
	}
	if c.SamplePeriod <= 0 {
		return fmt.Errorf("%w: sample_period must be positive, got %d", ErrInvalidConfig, c.SamplePeriod)
	}
	probabilities := []struct {
		name string
		p    float64
	}{
		{"p_initial_infection", c.InitialInfection},
		{"p_infection", c.Infection},
		{"p_death", c.Death},
	}
	for _, pr := range probabilities {
		// Written as a negated range check so NaN is rejected too.
		if !(pr.p >= 0 && pr.p <= 1) {
			return fmt.Errorf("%w: %s must be in [0, 1], got %v", ErrInvalidConfig, pr.name, pr.p)
		}
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"at_home", c.AtHome},
		{"sickness", c.Sickness},
		{"shopping", c.Shopping},
		{"spend", c.Spend},
	}
	for _, rg := range ranges {
		if rg.r.Min < 0 || rg.r.Min > rg.r.Max {
			return fmt.Errorf("%w: %s must satisfy 0 <= min <= max, got %s", ErrInvalidConfig, rg.name, rg.r)
		}
	}
	// Agents act at ticks <= horizon, so every duration must keep
	// horizon+max representable.
	for _, rg := range ranges[:3] { // durations only, not spend
		if rg.r.Max > math.MaxInt64-c.Horizon {
			return fmt.Errorf("%w: %s max %d overflows virtual time past horizon %d", ErrInvalidConfig, rg.name, rg.r.Max, c.Horizon)
		}
	}
	return nil
}

// decodeStrict decodes data onto out, rejecting unknown fields.
func decodeStrict(data []byte, out interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

// LoadConfig reads a scenario file and overlays it on base, so fields the
// file omits keep base's values. The result is not validated.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading scenario config: %w", err)
	}
	cfg := base
	if err := decodeStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}
	return cfg, nil
}

type presetFile struct {
	Presets map[string]Config `yaml:"presets"`
}

// Presets returns the built-in scenarios keyed by name.
func Presets() map[string]Config {
	var f presetFile
	if err := decodeStrict(presetsYAML, &f); err != nil {
		panic(fmt.Sprintf("embedded presets.yaml is malformed: %v", err))
	}
	return f.Presets
}

// PresetNames returns the built-in scenario names in sorted order.
func PresetNames() []string {
	presets := Presets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the named built-in scenario.
func Preset(name string) (Config, error) {
	cfg, ok := Presets()[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q; valid: %v", name, PresetNames())
	}
	return cfg, nil
}
