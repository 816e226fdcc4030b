package config

import "time"

// Config is the root configuration for the enforcement runtime.
type Config struct {
	Enforcement EnforcementConfig `yaml:"enforcement"`
	Policy      PolicyConfig      `yaml:"policy"`
	Audit       AuditConfig       `yaml:"audit"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// EnforcementConfig configures the enforcement gateway and its engine.
type EnforcementConfig struct {
	// Mode is the enforcement mode: "enforce-policies", "permit-all", or
	// "deny-all". Any other value leaves the gateway in the invalid mode,
	// which fails every call until corrected; it is deliberately not
	// rejected here so a misconfigured deployment fails closed at call
	// time instead of silently reverting to a default.
	Mode string `yaml:"mode"`

	// CombiningAlgorithm names the policy combining algorithm. Unknown
	// names fail configuration eagerly.
	CombiningAlgorithm string `yaml:"combining_algorithm"`

	// StaticDecision is the verdict of the built-in static engine:
	// "Permit", "Deny", "Indeterminate", or "NotApplicable".
	StaticDecision string `yaml:"static_decision"`
}

// PolicyConfig configures policy document sources.
type PolicyConfig struct {
	// RepositoryDir holds operator-maintained repository-wide documents.
	RepositoryDir string `yaml:"repository_dir"`

	// DescriptorPath locates the security descriptor that drives policy
	// generation. Empty disables generation.
	DescriptorPath string `yaml:"descriptor_path"`

	// WorkDir is where generated-policy snapshots are written.
	WorkDir string `yaml:"work_dir"`

	// Watch enables automatic reload on file changes.
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period before a watched change
	// triggers a reload.
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// ReloadSchedule is an optional cron expression for scheduled reloads
	// (e.g. "0 * * * *" for hourly). Empty disables scheduled reloads.
	ReloadSchedule string `yaml:"reload_schedule"`
}

// AuditConfig configures the decision audit trail.
type AuditConfig struct {
	// Enabled turns decision recording on.
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	// AsyncBuffer is the size of the async write channel.
	AsyncBuffer int `yaml:"async_buffer"`

	// RetentionDays is how long records are kept; 0 disables age pruning.
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of stored records; 0 disables the cap.
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for retention pruning.
	PruneSchedule string `yaml:"prune_schedule"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled turns metrics collection and the /metrics endpoint on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics HTTP listen address.
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem component.
	Subsystem string `yaml:"subsystem"`
}
