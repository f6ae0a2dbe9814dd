package config

import (
	"fmt"
	"os"
	"time"

	"balance/meta"
	"balance/policy"
	"balance/scenario"
	"balance/utils"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Policies known to the find-range experiment.
var Policies = []string{"deathball", "kiting"}

type Config struct {
	Address     string        `yaml:"address" env:"BALANCE_ADDRESS"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"BALANCE_HTTP_TIMEOUT"`
	LogLevel    string        `yaml:"log_level" env:"BALANCE_LOG_LEVEL"`
	OutputDir   string        `yaml:"output_dir" env:"BALANCE_OUTPUT_DIR"`
	Search      Search        `yaml:"search"`
	Modifier    string        `yaml:"modifier" env:"BALANCE_MODIFIER"`
	Policies    []string      `yaml:"policies" env:"BALANCE_POLICIES" envSeparator:","`
	Scenarios   []Scenario    `yaml:"scenarios"`
	Deathball   Deathball     `yaml:"deathball"`
	Kiting      Kiting        `yaml:"kiting"`
	Rollout     Rollout       `yaml:"rollout"`
}

type Search struct {
	Precision    float64 `yaml:"precision" env:"BALANCE_PRECISION"`
	MaxDoublings int     `yaml:"max_doublings" env:"BALANCE_MAX_DOUBLINGS"`
}

// Scenario names a built-in scenario, or a file on disk when File is set.
type Scenario struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type Deathball struct {
	MaxSteps int `yaml:"max_steps"`
}

type Kiting struct {
	MaxSteps           int `yaml:"max_steps"`
	Stride             int `yaml:"stride"`
	policy.KiteOptions `yaml:",inline"`
}

type Rollout struct {
	Env            string  `yaml:"env"`
	Scenario       string  `yaml:"scenario"`
	Episodes       int     `yaml:"episodes" env:"BALANCE_EPISODES"`
	MaxSteps       int     `yaml:"max_steps"` // Engine steps per episode before it counts as a timeout, 0 for no cap
	StepsPerAction int     `yaml:"steps_per_action"`
	Seed           uint64  `yaml:"seed" env:"BALANCE_SEED"`
	Caution        float64 `yaml:"caution"`
	WinWeight      float64 `yaml:"win_weight"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Address:     meta.DEFAULT_ADDRESS,
		HTTPTimeout: 5 * time.Minute,
		LogLevel:    "info",
		OutputDir:   "experiments",
		Search: Search{
			Precision:    meta.PRECISION,
			MaxDoublings: meta.MAX_DOUBLINGS,
		},
		Modifier: "attack_speed",
		Policies: Policies,
		Scenarios: []Scenario{
			{Name: "CavalryVsSpearmen"},
			{Name: "CavalryVsSlingers"},
		},
		Deathball: Deathball{MaxSteps: meta.MAX_STEPS},
		Kiting: Kiting{
			MaxSteps:    meta.MAX_STEPS,
			Stride:      meta.STRIDE,
			KiteOptions: policy.DefaultKiteOptions(),
		},
		Rollout: Rollout{
			Env:            "CavVsInfDirections",
			Scenario:       "CavalryVsInfantry",
			Episodes:       meta.EPISODES,
			MaxSteps:       meta.MAX_STEPS,
			StepsPerAction: 1,
			Seed:           1,
			Caution:        4,
			WinWeight:      5,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// BALANCE_* environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Search.Precision <= 0 {
		return fmt.Errorf("search precision must be positive, got %v", c.Search.Precision)
	}
	if c.Search.MaxDoublings <= 0 {
		return fmt.Errorf("max doublings must be positive, got %d", c.Search.MaxDoublings)
	}
	for _, p := range c.Policies {
		if utils.FindIndex(Policies, p) < 0 {
			return fmt.Errorf("unknown policy %q", p)
		}
	}
	if _, err := scenario.ModifierByName(c.Modifier); err != nil {
		return err
	}
	if c.Kiting.ResumeDistance < c.Kiting.RetreatDistance {
		return fmt.Errorf("kiting resume distance %v is below retreat distance %v", c.Kiting.ResumeDistance, c.Kiting.RetreatDistance)
	}
	return nil
}

// Load resolves the scenario configuration it names.
func (s Scenario) Load() (scenario.Config, error) {
	if s.File != "" {
		cfg, err := scenario.LoadFile(s.File)
		if err != nil {
			return cfg, err
		}
		if s.Name != "" {
			cfg.Name = s.Name
		}
		return cfg, nil
	}
	return scenario.Load(s.Name)
}
