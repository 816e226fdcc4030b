package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, applies
// THEMISTO_* environment overrides, and validates the result. Environment
// variables always take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides using the
// THEMISTO_SECTION_FIELD naming convention.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("THEMISTO_ENFORCEMENT_MODE"); val != "" {
		cfg.Enforcement.Mode = val
	}
	if val := os.Getenv("THEMISTO_ENFORCEMENT_COMBINING_ALGORITHM"); val != "" {
		cfg.Enforcement.CombiningAlgorithm = val
	}
	if val := os.Getenv("THEMISTO_ENFORCEMENT_STATIC_DECISION"); val != "" {
		cfg.Enforcement.StaticDecision = val
	}

	if val := os.Getenv("THEMISTO_POLICY_REPOSITORY_DIR"); val != "" {
		cfg.Policy.RepositoryDir = val
	}
	if val := os.Getenv("THEMISTO_POLICY_DESCRIPTOR_PATH"); val != "" {
		cfg.Policy.DescriptorPath = val
	}
	if val := os.Getenv("THEMISTO_POLICY_WORK_DIR"); val != "" {
		cfg.Policy.WorkDir = val
	}
	if val := os.Getenv("THEMISTO_POLICY_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Policy.Watch = b
		}
	}
	if val := os.Getenv("THEMISTO_POLICY_RELOAD_SCHEDULE"); val != "" {
		cfg.Policy.ReloadSchedule = val
	}
	if val := os.Getenv("THEMISTO_POLICY_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Policy.DebounceInterval = d
		}
	}

	if val := os.Getenv("THEMISTO_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("THEMISTO_AUDIT_DB_PATH"); val != "" {
		cfg.Audit.DBPath = val
	}
	if val := os.Getenv("THEMISTO_AUDIT_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Audit.RetentionDays = n
		}
	}

	if val := os.Getenv("THEMISTO_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("THEMISTO_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("THEMISTO_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("THEMISTO_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
}
