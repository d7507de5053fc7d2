package params

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClusterConfigValidate(t *testing.T) {
	if err := DefaultClusterConfig.Validate(); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		mutate func(*ClusterConfig)
	}{
		{"zero speed", func(c *ClusterConfig) { c.WalkerSpeed = 0 }},
		{"negative factor", func(c *ClusterConfig) { c.ImpossibleFactor = -0.1 }},
		{"factor above one", func(c *ClusterConfig) { c.ImpossibleFactor = 1.1 }},
		{"zero stay bound", func(c *ClusterConfig) { c.MaxStayDuration = 0 }},
		{"zero passes", func(c *ClusterConfig) { c.MaxPasses = 0 }},
	}
	for _, c := range cases {
		conf := DefaultClusterConfig
		c.mutate(&conf)
		if err := conf.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: got %v, want ErrInvalidConfig", c.name, err)
		}
	}

	// Long stays disable the stay bound, so a zero bound is fine then.
	conf := DefaultClusterConfig
	conf.MaxStayDuration = 0
	conf.AllowLongStays = true
	if err := conf.Validate(); err != nil {
		t.Errorf("long stays with zero bound: %v", err)
	}
}

func TestSimulationConfigValidate(t *testing.T) {
	if err := DefaultSimulationConfig.Validate(); err != nil {
		t.Fatal(err)
	}
	conf := DefaultSimulationConfig
	conf.StayDurationMax = conf.StayDurationMin - time.Second
	if err := conf.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.Cluster != DefaultClusterConfig {
		t.Errorf("cluster config: %+v", conf.Cluster)
	}
	if len(conf.Detectors) != 4 {
		t.Errorf("detectors = %d, want 4", len(conf.Detectors))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
cluster:
  walker_speed: 1.2
  max_passes: 3
simulation:
  num_walkers: 25
detectors:
  - id: X
    x: 0
    y: 0
  - id: Y
    x: 500
    y: 0
`
	if err := os.WriteFile(path, []byte(yaml), 0660); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Cluster.WalkerSpeed != 1.2 || conf.Cluster.MaxPasses != 3 {
		t.Errorf("cluster: %+v", conf.Cluster)
	}
	// Untouched fields keep their defaults.
	if conf.Cluster.ImpossibleFactor != DefaultClusterConfig.ImpossibleFactor {
		t.Errorf("impossible factor = %v", conf.Cluster.ImpossibleFactor)
	}
	if conf.Simulation.NumWalkers != 25 {
		t.Errorf("num walkers = %d", conf.Simulation.NumWalkers)
	}
	if len(conf.Detectors) != 2 || conf.Detectors[1].ID != "Y" || conf.Detectors[1].X != 500 {
		t.Errorf("detectors: %+v", conf.Detectors)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}
