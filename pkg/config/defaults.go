package config

import "time"

// Default values applied to fields the file leaves unset.
const (
	DefaultMode               = "enforce-policies"
	DefaultCombiningAlgorithm = "deny-overrides"
	DefaultStaticDecision     = "Deny"

	DefaultRepositoryDir    = "policies"
	DefaultWorkDir          = "data/generated-policies"
	DefaultDebounceInterval = 250 * time.Millisecond

	DefaultAuditDBPath      = "data/audit.db"
	DefaultAuditAsyncBuffer = 1000
	DefaultRetentionDays    = 90
	DefaultPruneSchedule    = "0 3 * * *"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsListenAddress = ":9464"
	DefaultMetricsNamespace     = "themisto"
	DefaultMetricsSubsystem     = "authz"
)

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Enforcement.Mode == "" {
		cfg.Enforcement.Mode = DefaultMode
	}
	if cfg.Enforcement.CombiningAlgorithm == "" {
		cfg.Enforcement.CombiningAlgorithm = DefaultCombiningAlgorithm
	}
	if cfg.Enforcement.StaticDecision == "" {
		cfg.Enforcement.StaticDecision = DefaultStaticDecision
	}

	if cfg.Policy.RepositoryDir == "" {
		cfg.Policy.RepositoryDir = DefaultRepositoryDir
	}
	if cfg.Policy.WorkDir == "" {
		cfg.Policy.WorkDir = DefaultWorkDir
	}
	if cfg.Policy.DebounceInterval <= 0 {
		cfg.Policy.DebounceInterval = DefaultDebounceInterval
	}

	if cfg.Audit.DBPath == "" {
		cfg.Audit.DBPath = DefaultAuditDBPath
	}
	if cfg.Audit.AsyncBuffer <= 0 {
		cfg.Audit.AsyncBuffer = DefaultAuditAsyncBuffer
	}
	if cfg.Audit.RetentionDays == 0 {
		cfg.Audit.RetentionDays = DefaultRetentionDays
	}
	if cfg.Audit.PruneSchedule == "" {
		cfg.Audit.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
