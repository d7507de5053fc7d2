package params

import (
	"fmt"

	"github.com/spf13/viper"
)

// DetectorSpec is the on-disk shape of one detector. Coordinates are
// meters in a shared planar frame.
type DetectorSpec struct {
	ID string  `mapstructure:"id" json:"id"`
	X  float64 `mapstructure:"x" json:"x"`
	Y  float64 `mapstructure:"y" json:"y"`
}

// DefaultDetectorSpecs is the four-corner survey arena: a 20km square
// with one detector at each corner.
var DefaultDetectorSpecs = []DetectorSpec{
	{ID: "A", X: -10000, Y: 10000},
	{ID: "B", X: 10000, Y: 10000},
	{ID: "C", X: 10000, Y: -10000},
	{ID: "D", X: -10000, Y: -10000},
}

// Config aggregates every subsystem's parameters plus the detector layout.
type Config struct {
	Cluster    ClusterConfig    `mapstructure:"cluster"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Evaluate   EvaluateConfig   `mapstructure:"evaluate"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Detectors  []DetectorSpec   `mapstructure:"detectors"`
}

func DefaultConfig() *Config {
	return &Config{
		Cluster:    DefaultClusterConfig,
		Simulation: DefaultSimulationConfig,
		Evaluate:   DefaultEvaluateConfig,
		Batch:      DefaultBatchConfig,
		Detectors:  DefaultDetectorSpecs,
	}
}

// Load reads a config file (YAML or JSON, decided by extension) over the
// defaults. An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	// Slices merge element-wise over the defaults; a file that lists
	// fewer entries than the default would keep the tail. Replace whole.
	if v.IsSet("detectors") {
		c.Detectors = nil
	}
	if v.IsSet("batch.walker_counts") {
		c.Batch.WalkerCounts = nil
	}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}
