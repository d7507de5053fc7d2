package params

import (
	"errors"
	"fmt"
	"time"
)

// ClusterConfig parameterizes the trajectory clustering engine.
type ClusterConfig struct {
	// WalkerSpeed is the assumed pedestrian speed, meters per second.
	WalkerSpeed float64 `mapstructure:"walker_speed"`

	// ImpossibleFactor scales the minimum travel time between two
	// detectors before a move is called infeasible. Arriving in less
	// than factor * minimum is treated as a different person.
	// Must be in (0, 1].
	ImpossibleFactor float64 `mapstructure:"impossible_factor"`

	// AllowLongStays disables the stay-duration cutoff entirely.
	AllowLongStays bool `mapstructure:"allow_long_stays"`

	// MaxStayDuration bounds a same-detector stay gap. A longer gap at
	// rest is treated as a possible identity change.
	MaxStayDuration time.Duration `mapstructure:"max_stay_duration"`

	// SeqAnomalyDelta is the sequence-number jump that, combined with an
	// infeasible move, flags a burst as belonging to someone else.
	SeqAnomalyDelta int `mapstructure:"seq_anomaly_delta"`

	// MaxPasses bounds the multi-pass driver.
	MaxPasses int `mapstructure:"max_passes"`
}

var DefaultClusterConfig = ClusterConfig{
	WalkerSpeed:      1.4,
	ImpossibleFactor: 0.8,
	AllowLongStays:   false,
	MaxStayDuration:  15 * time.Minute,
	SeqAnomalyDelta:  64,
	MaxPasses:        10,
}

func (c ClusterConfig) Validate() error {
	if c.WalkerSpeed <= 0 {
		return fmt.Errorf("%w: walker speed %v", ErrInvalidConfig, c.WalkerSpeed)
	}
	if c.ImpossibleFactor <= 0 || c.ImpossibleFactor > 1 {
		return fmt.Errorf("%w: impossible factor %v not in (0,1]", ErrInvalidConfig, c.ImpossibleFactor)
	}
	if c.MaxStayDuration <= 0 && !c.AllowLongStays {
		return fmt.Errorf("%w: max stay duration %v", ErrInvalidConfig, c.MaxStayDuration)
	}
	if c.MaxPasses < 1 {
		return fmt.Errorf("%w: max passes %d", ErrInvalidConfig, c.MaxPasses)
	}
	return nil
}

var ErrInvalidConfig = errors.New("invalid config")

// SimulationConfig parameterizes synthetic walker generation.
type SimulationConfig struct {
	NumWalkers          int           `mapstructure:"num_walkers"`
	PayloadsPerDetector int           `mapstructure:"payloads_per_detector"`
	StayDurationMin     time.Duration `mapstructure:"stay_duration_min"`
	StayDurationMax     time.Duration `mapstructure:"stay_duration_max"`
	WalkerSpeed         float64       `mapstructure:"walker_speed"`

	// VariationFactor randomizes travel time around distance/speed,
	// as a proportion of the base time.
	VariationFactor float64 `mapstructure:"variation_factor"`

	StartTime time.Time `mapstructure:"start_time"`
	Seed      int64     `mapstructure:"seed"`
}

var DefaultSimulationConfig = SimulationConfig{
	NumWalkers:          10,
	PayloadsPerDetector: 10,
	StayDurationMin:     3 * time.Minute,
	StayDurationMax:     7 * time.Minute,
	WalkerSpeed:         1.4,
	VariationFactor:     0.1,
	StartTime:           time.Date(2024, 1, 14, 11, 0, 0, 0, time.UTC),
	Seed:                1,
}

func (c SimulationConfig) Validate() error {
	if c.NumWalkers < 1 {
		return fmt.Errorf("%w: num walkers %d", ErrInvalidConfig, c.NumWalkers)
	}
	if c.WalkerSpeed <= 0 {
		return fmt.Errorf("%w: walker speed %v", ErrInvalidConfig, c.WalkerSpeed)
	}
	if c.StayDurationMax < c.StayDurationMin {
		return fmt.Errorf("%w: stay duration max %v < min %v", ErrInvalidConfig, c.StayDurationMax, c.StayDurationMin)
	}
	return nil
}

// EvaluateConfig parameterizes ground-truth accuracy scoring.
type EvaluateConfig struct {
	// Tolerance is the clock slack allowed when matching an estimated
	// stay against a ground-truth stay.
	Tolerance time.Duration `mapstructure:"tolerance"`
}

var DefaultEvaluateConfig = EvaluateConfig{
	Tolerance: 20 * time.Minute,
}

// BatchConfig parameterizes multi-run experiments.
type BatchConfig struct {
	// WalkerCounts are the crowd sizes to sweep.
	WalkerCounts []int `mapstructure:"walker_counts"`

	// RunsPerCondition is how many seeded repetitions each crowd size gets.
	RunsPerCondition int `mapstructure:"runs_per_condition"`

	BaseSeed  int64  `mapstructure:"base_seed"`
	OutputDir string `mapstructure:"output_dir"`
}

var DefaultBatchConfig = BatchConfig{
	WalkerCounts:     []int{5, 10, 20},
	RunsPerCondition: 10,
	BaseSeed:         1,
	OutputDir:        "experiments",
}

func (c BatchConfig) Validate() error {
	if len(c.WalkerCounts) == 0 {
		return fmt.Errorf("%w: no walker counts", ErrInvalidConfig)
	}
	if c.RunsPerCondition < 1 {
		return fmt.Errorf("%w: runs per condition %d", ErrInvalidConfig, c.RunsPerCondition)
	}
	return nil
}
