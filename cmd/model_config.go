package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/hysteresis-sim/sim"
)

// ModelConfig is the optional YAML file overriding the reference model
// parameters. Zero fields keep the defaults.
type ModelConfig struct {
	ArrivalMean          float64 `yaml:"arrival_mean"`           // minutes between arrivals
	PrimaryServiceMean   float64 `yaml:"primary_service_mean"`   // WS1 mean service time, minutes
	SecondaryServiceMean float64 `yaml:"secondary_service_mean"` // WS2 mean service time, minutes
	WarmupMinutes        float64 `yaml:"warmup_minutes"`
	Seed                 int64   `yaml:"seed"`
}

// loadModelConfig parses a model parameter file.
// Uses strict field checking so typos are reported instead of ignored.
func loadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model config: %w", err)
	}
	var mc ModelConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&mc); err != nil {
		return nil, fmt.Errorf("parsing model config %s: %w", path, err)
	}
	fillModelDefaults(&mc)
	return &mc, nil
}

func fillModelDefaults(mc *ModelConfig) {
	if mc.ArrivalMean == 0 {
		mc.ArrivalMean = sim.DefaultArrivalMean
	}
	if mc.PrimaryServiceMean == 0 {
		mc.PrimaryServiceMean = sim.DefaultPrimaryServiceMean
	}
	if mc.SecondaryServiceMean == 0 {
		mc.SecondaryServiceMean = sim.DefaultSecondaryServiceMean
	}
	if mc.WarmupMinutes == 0 {
		mc.WarmupMinutes = sim.DefaultWarmup
	}
}

// apply copies the model parameters into cfg. The seed is only taken from
// the file when the --seed flag was not given explicitly.
func (mc *ModelConfig) apply(cfg *sim.Config, seedFromFlag bool) {
	cfg.Service = sim.NewServiceConfig(mc.ArrivalMean, mc.PrimaryServiceMean, mc.SecondaryServiceMean)
	cfg.Horizon.Warmup = mc.WarmupMinutes
	if !seedFromFlag && mc.Seed != 0 {
		cfg.Seed = mc.Seed
	}
}
