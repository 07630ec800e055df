package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config is the harness configuration, loaded from the environment with
// an optional YAML overrides file on top.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	Grading     struct {
		Trials   int   `env:"GAUNTLET_TRIALS" envDefault:"500"`
		BaseSeed int64 `env:"GAUNTLET_SEED" envDefault:"0"`
	}
	HTTP struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	// OverridesFile optionally points at a YAML file of per-run overrides.
	OverridesFile string `env:"GAUNTLET_OVERRIDES"`
	// Overrides holds the parsed contents of OverridesFile.
	Overrides Overrides `env:"-"`
}

// Overrides are per-run tweaks that would be unwieldy as environment
// variables: a trial-count override and per-problem evaluation-budget
// overrides, keyed by problem name.
type Overrides struct {
	Trials  int            `yaml:"trials"`
	Budgets map[string]int `yaml:"budgets"`
}

// Load reads the configuration from the environment, then applies the
// overrides file when one is configured.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.OverridesFile != "" {
		if err := loadOverrides(cfg.OverridesFile, &cfg.Overrides); err != nil {
			return nil, fmt.Errorf("loading overrides %s: %w", cfg.OverridesFile, err)
		}
		if cfg.Overrides.Trials > 0 {
			cfg.Grading.Trials = cfg.Overrides.Trials
		}
	}

	if cfg.Grading.Trials < 1 {
		return nil, fmt.Errorf("trial count must be positive, got %d", cfg.Grading.Trials)
	}

	return cfg, nil
}

func loadOverrides(path string, dst *Overrides) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}
