package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

const (
	NumFloors   = 9
	NumCars     = 2
	BottomFloor = 1
	QueueCap    = 32
)

// Config holds the fleet parameters that may be overridden by a YAML file.
type Config struct {
	NumFloors   int
	NumCars     int
	BottomFloor int
}

// fileConfig mirrors Config for YAML decoding. BottomFloor is a pointer so
// an explicit ground floor of 0 is distinguishable from an absent field.
type fileConfig struct {
	NumFloors   int  `yaml:"NumFloors"`
	NumCars     int  `yaml:"NumCars"`
	BottomFloor *int `yaml:"BottomFloor"`
}

func Default() Config {
	return Config{
		NumFloors:   NumFloors,
		NumCars:     NumCars,
		BottomFloor: BottomFloor,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	var overrides fileConfig
	if err := yaml.NewDecoder(file).Decode(&overrides); err != nil {
		return cfg, err
	}

	if overrides.NumFloors > 0 {
		cfg.NumFloors = overrides.NumFloors
	}
	if overrides.NumCars > 0 {
		cfg.NumCars = overrides.NumCars
	}
	if overrides.BottomFloor != nil {
		cfg.BottomFloor = *overrides.BottomFloor
	}
	return cfg, nil
}

// TopFloor is the highest serviceable floor for this configuration.
func (c Config) TopFloor() int {
	return c.BottomFloor + c.NumFloors - 1
}
