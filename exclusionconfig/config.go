// Package exclusionconfig resolves a Config through the same
// four-level precedence the teacher documents for its own server
// configuration: built-in defaults, overlaid by a YAML file, overlaid
// by EXCLUSIONMS_* environment variables, with the caller free to apply
// programmatic overrides on top of the result.
package exclusionconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pgarrett-scripps/exclusionms/exclusion"
)

// TreeConfig tunes the mass tree's construction.
type TreeConfig struct {
	// InitialCapacityHint is advisory; the tree grows unbounded
	// regardless of this value.
	InitialCapacityHint int `yaml:"initialCapacityHint"`
}

// ToleranceConfig is the default Tolerance applied by callers that build
// probes via exclusion.Expand without specifying their own tolerance.
type ToleranceConfig struct {
	Charge    bool    `yaml:"exactCharge"`
	MassPPM   float64 `yaml:"massPPM"`
	RT        float64 `yaml:"rt"`
	OOK0      float64 `yaml:"ook0"`
	Intensity float64 `yaml:"intensity"`
}

// Tolerance converts the configured per-dimension tolerances into an
// exclusion.Tolerance, ready for exclusion.Expand. A zero field leaves
// that dimension's bound null, matching Expand's own absent-tolerance
// rule.
func (t ToleranceConfig) Tolerance() exclusion.Tolerance {
	tol := exclusion.Tolerance{Charge: t.Charge}
	if t.MassPPM != 0 {
		tol.Mass = &t.MassPPM
	}
	if t.RT != 0 {
		tol.RT = &t.RT
	}
	if t.OOK0 != 0 {
		tol.OOK0 = &t.OOK0
	}
	if t.Intensity != 0 {
		tol.Intensity = &t.Intensity
	}
	return tol
}

// PersistenceConfig groups snapshot-store settings.
type PersistenceConfig struct {
	Directory string `yaml:"directory"`
	Compress  bool   `yaml:"compress"`
}

// Config is the top-level, YAML-serializable configuration for
// constructing an exclusion.Guard and its persistence.Store.
type Config struct {
	Tree        TreeConfig        `yaml:"tree"`
	Tolerance   ToleranceConfig   `yaml:"tolerance"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// DefaultConfig returns a Config populated with production-safe
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Tree: TreeConfig{
			InitialCapacityHint: 1 << 16,
		},
		Tolerance: ToleranceConfig{
			Charge:    true,
			MassPPM:   10,
			RT:        30,
			OOK0:      0.02,
			Intensity: 0.1,
		},
		Persistence: PersistenceConfig{
			Directory: "./snapshots",
			Compress:  true,
		},
	}
}

// ConfigFromFile reads a YAML configuration file and merges it on top
// of the built-in defaults. Fields absent from the file retain their
// defaults.
func ConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("exclusionconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("exclusionconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Environment variable mapping (all optional, prefix EXCLUSIONMS_):
//
//	EXCLUSIONMS_TREE_CAPACITY_HINT   → Tree.InitialCapacityHint
//	EXCLUSIONMS_TOLERANCE_CHARGE     → Tolerance.Charge       ("true"/"false")
//	EXCLUSIONMS_TOLERANCE_MASS_PPM   → Tolerance.MassPPM
//	EXCLUSIONMS_TOLERANCE_RT         → Tolerance.RT
//	EXCLUSIONMS_TOLERANCE_OOK0       → Tolerance.OOK0
//	EXCLUSIONMS_TOLERANCE_INTENSITY  → Tolerance.Intensity
//	EXCLUSIONMS_PERSISTENCE_DIR      → Persistence.Directory
//	EXCLUSIONMS_PERSISTENCE_COMPRESS → Persistence.Compress  ("true"/"false")
func ConfigFromEnv(cfg *Config) *Config {
	setEnvInt("EXCLUSIONMS_TREE_CAPACITY_HINT", &cfg.Tree.InitialCapacityHint)

	setEnvBool("EXCLUSIONMS_TOLERANCE_CHARGE", &cfg.Tolerance.Charge)
	setEnvFloat("EXCLUSIONMS_TOLERANCE_MASS_PPM", &cfg.Tolerance.MassPPM)
	setEnvFloat("EXCLUSIONMS_TOLERANCE_RT", &cfg.Tolerance.RT)
	setEnvFloat("EXCLUSIONMS_TOLERANCE_OOK0", &cfg.Tolerance.OOK0)
	setEnvFloat("EXCLUSIONMS_TOLERANCE_INTENSITY", &cfg.Tolerance.Intensity)

	setEnvStr("EXCLUSIONMS_PERSISTENCE_DIR", &cfg.Persistence.Directory)
	setEnvBool("EXCLUSIONMS_PERSISTENCE_COMPRESS", &cfg.Persistence.Compress)

	return cfg
}

// LoadConfig implements the full four-level configuration hierarchy:
//
//  1. Start with built-in defaults.
//  2. If configPath is non-empty, overlay the YAML file.
//  3. Apply environment variable overrides.
//  4. The caller may then apply programmatic overrides directly on the
//     returned Config before constructing a Guard/Store from it.
func LoadConfig(configPath string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		var err error
		cfg, err = ConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultConfig()
	}

	return ConfigFromEnv(cfg), nil
}

// Validate performs structural validation, returning a descriptive
// error for the first invalid field encountered.
func (c *Config) Validate() error {
	if c.Tree.InitialCapacityHint < 0 {
		return fmt.Errorf("tree.initialCapacityHint must not be negative")
	}
	if c.Tolerance.MassPPM < 0 {
		return fmt.Errorf("tolerance.massPPM must not be negative")
	}
	if c.Tolerance.RT < 0 {
		return fmt.Errorf("tolerance.rt must not be negative")
	}
	if c.Tolerance.OOK0 < 0 {
		return fmt.Errorf("tolerance.ook0 must not be negative")
	}
	if c.Tolerance.Intensity < 0 {
		return fmt.Errorf("tolerance.intensity must not be negative")
	}
	if strings.TrimSpace(c.Persistence.Directory) == "" {
		return fmt.Errorf("persistence.directory must not be empty")
	}
	return nil
}

func setEnvStr(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setEnvBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

func setEnvInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func setEnvFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}
