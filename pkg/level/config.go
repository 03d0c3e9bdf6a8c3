package level

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mfeld/cavegen/pkg/cave"
	"github.com/mfeld/cavegen/pkg/physics"
	"github.com/mfeld/cavegen/pkg/placement"
)

// Config specifies all cave generation parameters.
// It supports YAML parsing and includes comprehensive validation.
type Config struct {
	// Seed is the master seed for deterministic generation. Required: the
	// library never invents one so identical configs always produce
	// identical levels.
	Seed string `yaml:"seed" json:"seed"`

	// Width and Height are the grid dimensions in tiles.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// InitialWallRatio is the seeding wall probability (0.40-0.55).
	InitialWallRatio float64 `yaml:"initialWallRatio" json:"initialWallRatio"`

	// SimulationSteps is the number of cellular automata iterations (3-6).
	SimulationSteps int `yaml:"simulationSteps" json:"simulationSteps"`

	// BirthThreshold is the CA birth rule (4-6).
	BirthThreshold int `yaml:"birthThreshold" json:"birthThreshold"`

	// SurvivalThreshold is the CA survival rule (2-4).
	SurvivalThreshold int `yaml:"survivalThreshold" json:"survivalThreshold"`

	// MinRoomSize prunes floor regions smaller than this before corridor
	// carving (20-100).
	MinRoomSize int `yaml:"minRoomSize" json:"minRoomSize"`

	// MinStartGoalDistance is the minimum Euclidean spawn-goal distance
	// (30-100).
	MinStartGoalDistance int `yaml:"minStartGoalDistance" json:"minStartGoalDistance"`

	// CoinCount is the number of coins to place (10-30).
	CoinCount int `yaml:"coinCount" json:"coinCount"`

	// EnemyCount is the number of enemies to place (3-10).
	EnemyCount int `yaml:"enemyCount" json:"enemyCount"`

	// Seeder overrides initial seeding strategy parameters.
	Seeder cave.SeederConfig `yaml:"seeder,omitempty" json:"seeder,omitempty"`

	// Physics overrides the jump model constants.
	Physics physics.Constants `yaml:"physics,omitempty" json:"physics,omitempty"`

	// Spawn, Platforms, Goal, Coins and Enemies override per-placer
	// parameters. Zero values take the placer defaults.
	Spawn     placement.SpawnConfig         `yaml:"spawn,omitempty" json:"spawn,omitempty"`
	Platforms placement.PlatformConfig      `yaml:"platforms,omitempty" json:"platforms,omitempty"`
	Goal      placement.GoalConfig          `yaml:"goal,omitempty" json:"goal,omitempty"`
	Coins     placement.CoinConfig          `yaml:"coins,omitempty" json:"coins,omitempty"`
	Enemies   placement.EnemyPlacerConfig   `yaml:"enemies,omitempty" json:"enemies,omitempty"`
	Analyzer  placement.EnemyAnalyzerConfig `yaml:"enemyAnalyzer,omitempty" json:"enemyAnalyzer,omitempty"`
}

// DefaultConfig returns a Config with every parameter at its documented
// default. The seed is left empty and must be set by the caller.
func DefaultConfig() *Config {
	cfg := &Config{
		Width:                100,
		Height:               60,
		InitialWallRatio:     0.45,
		SimulationSteps:      4,
		BirthThreshold:       5,
		SurvivalThreshold:    4,
		MinRoomSize:          50,
		MinStartGoalDistance: 40,
		CoinCount:            15,
		EnemyCount:           5,
		Seeder:               cave.DefaultSeederConfig(),
		Physics:              physics.DefaultConstants(),
		Spawn:                placement.DefaultSpawnConfig(),
		Platforms:            placement.DefaultPlatformConfig(),
		Goal:                 placement.DefaultGoalConfig(),
		Coins:                placement.DefaultCoinConfig(),
		Enemies:              placement.DefaultEnemyPlacerConfig(),
		Analyzer:             placement.DefaultEnemyAnalyzerConfig(),
	}
	cfg.Seeder.WallRatio = cfg.InitialWallRatio
	return cfg
}

// ConfigError is a structured configuration fault: which parameter failed,
// the offending value, and what to try instead.
type ConfigError struct {
	Message    string      `json:"message"`
	Parameter  string      `json:"parameter"`
	Value      interface{} `json:"value"`
	Suggestion string      `json:"suggestion"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s (parameter %q = %v; %s)", e.Message, e.Parameter, e.Value, e.Suggestion)
}

// LoadConfig reads and validates a YAML configuration file. Fields omitted
// in the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
// Useful for testing and programmatic config generation.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// intRange describes one bounded integer option for validation.
type intRange struct {
	name       string
	value      int
	lo, hi     int
	suggestion string
}

// Validate checks every option against its documented range. It returns a
// *ConfigError describing the first violation, or nil.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return &ConfigError{
			Message:    "seed is required",
			Parameter:  "seed",
			Value:      c.Seed,
			Suggestion: "provide any non-empty string, e.g. \"cave-42\"",
		}
	}

	checks := []intRange{
		{"width", c.Width, 50, 200, "use a width between 50 and 200"},
		{"height", c.Height, 30, 120, "use a height between 30 and 120"},
		{"simulationSteps", c.SimulationSteps, 3, 6, "use 3-6 smoothing steps"},
		{"birthThreshold", c.BirthThreshold, 4, 6, "use a birth threshold of 4-6"},
		{"survivalThreshold", c.SurvivalThreshold, 2, 4, "use a survival threshold of 2-4"},
		{"minRoomSize", c.MinRoomSize, 20, 100, "use a minimum room size of 20-100"},
		{"minStartGoalDistance", c.MinStartGoalDistance, 30, 100, "use a distance of 30-100"},
		{"coinCount", c.CoinCount, 10, 30, "place 10-30 coins"},
		{"enemyCount", c.EnemyCount, 3, 10, "place 3-10 enemies"},
	}
	for _, ch := range checks {
		if ch.value < ch.lo || ch.value > ch.hi {
			return &ConfigError{
				Message:    fmt.Sprintf("%s must be in range [%d, %d]", ch.name, ch.lo, ch.hi),
				Parameter:  ch.name,
				Value:      ch.value,
				Suggestion: ch.suggestion,
			}
		}
	}

	if c.InitialWallRatio < 0.40 || c.InitialWallRatio > 0.55 {
		return &ConfigError{
			Message:    "initialWallRatio must be in range [0.40, 0.55]",
			Parameter:  "initialWallRatio",
			Value:      c.InitialWallRatio,
			Suggestion: "use a wall ratio between 0.40 and 0.55",
		}
	}

	if c.Seeder.Strategy != cave.SeedUniform && c.Seeder.Strategy != cave.SeedGraph {
		return &ConfigError{
			Message:    "unknown seeding strategy",
			Parameter:  "seeder.strategy",
			Value:      string(c.Seeder.Strategy),
			Suggestion: "use \"uniform\" or \"graph\"",
		}
	}

	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration.
// Used for deriving per-phase RNG seeds.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		// Fallback: hash the seed alone if YAML fails.
		h := sha256.Sum256([]byte(c.Seed))
		return h[:]
	}
	h := sha256.Sum256(data)
	return h[:]
}
