package config

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"mercator-hq/themisto/pkg/policy"
)

// Validate checks the configuration for errors that must fail startup.
//
// The enforcement mode is deliberately not validated: an unrecognized mode
// string parses to the invalid mode, which fails every enforcement call with
// an operational error until an administrator corrects it. Failing closed at
// call time is the contract; rejecting the file here would mask it.
func Validate(cfg *Config) error {
	if _, err := policy.LookupAlgorithm(cfg.Enforcement.CombiningAlgorithm); err != nil {
		return fmt.Errorf("enforcement.combining_algorithm: %w (known: %v)", err, policy.AlgorithmNames())
	}

	switch cfg.Enforcement.StaticDecision {
	case "Permit", "Deny", "Indeterminate", "NotApplicable":
	default:
		return fmt.Errorf("enforcement.static_decision: unknown decision %q", cfg.Enforcement.StaticDecision)
	}

	if cfg.Policy.RepositoryDir == "" {
		return fmt.Errorf("policy.repository_dir cannot be empty")
	}
	if cfg.Policy.DescriptorPath != "" && cfg.Policy.WorkDir == "" {
		return fmt.Errorf("policy.work_dir cannot be empty when a descriptor is configured")
	}
	if cfg.Policy.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Policy.ReloadSchedule); err != nil {
			return fmt.Errorf("policy.reload_schedule: invalid cron expression %q: %w", cfg.Policy.ReloadSchedule, err)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.DBPath == "" {
			return fmt.Errorf("audit.db_path cannot be empty when audit is enabled")
		}
		if cfg.Audit.RetentionDays < 0 {
			return fmt.Errorf("audit.retention_days cannot be negative")
		}
		if cfg.Audit.MaxRecords < 0 {
			return fmt.Errorf("audit.max_records cannot be negative")
		}
		if cfg.Audit.PruneSchedule != "" {
			if _, err := cron.ParseStandard(cfg.Audit.PruneSchedule); err != nil {
				return fmt.Errorf("audit.prune_schedule: invalid cron expression %q: %w", cfg.Audit.PruneSchedule, err)
			}
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		return fmt.Errorf("metrics.listen_address cannot be empty when metrics are enabled")
	}

	return nil
}
