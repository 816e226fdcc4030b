package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "policy:\n  repository_dir: /etc/policies\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Enforcement.Mode != DefaultMode {
		t.Errorf("Mode = %q, want default %q", cfg.Enforcement.Mode, DefaultMode)
	}
	if cfg.Enforcement.CombiningAlgorithm != DefaultCombiningAlgorithm {
		t.Errorf("CombiningAlgorithm = %q, want default %q", cfg.Enforcement.CombiningAlgorithm, DefaultCombiningAlgorithm)
	}
	if cfg.Policy.RepositoryDir != "/etc/policies" {
		t.Errorf("RepositoryDir = %q, want file value preserved", cfg.Policy.RepositoryDir)
	}
	if cfg.Policy.DebounceInterval != DefaultDebounceInterval {
		t.Errorf("DebounceInterval = %v, want default %v", cfg.Policy.DebounceInterval, DefaultDebounceInterval)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, DefaultLogLevel)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want default %q", cfg.Metrics.Namespace, DefaultMetricsNamespace)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
enforcement:
  mode: permit-all
  combining_algorithm: permit-overrides
  static_decision: Permit
policy:
  repository_dir: /srv/policies
  debounce_interval: 1s
audit:
  enabled: true
  db_path: /var/lib/audit.db
  retention_days: 30
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Enforcement.Mode != "permit-all" {
		t.Errorf("Mode = %q, want %q", cfg.Enforcement.Mode, "permit-all")
	}
	if cfg.Enforcement.CombiningAlgorithm != "permit-overrides" {
		t.Errorf("CombiningAlgorithm = %q, want %q", cfg.Enforcement.CombiningAlgorithm, "permit-overrides")
	}
	if cfg.Policy.DebounceInterval != time.Second {
		t.Errorf("DebounceInterval = %v, want 1s", cfg.Policy.DebounceInterval)
	}
	if !cfg.Audit.Enabled || cfg.Audit.RetentionDays != 30 {
		t.Errorf("Audit = %+v, want enabled with 30 day retention", cfg.Audit)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "enforcement:\n  mode: enforce-policies\n")

	t.Setenv("THEMISTO_ENFORCEMENT_MODE", "deny-all")
	t.Setenv("THEMISTO_LOGGING_LEVEL", "warn")
	t.Setenv("THEMISTO_AUDIT_ENABLED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Enforcement.Mode != "deny-all" {
		t.Errorf("Mode = %q, want env override %q", cfg.Enforcement.Mode, "deny-all")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override %q", cfg.Logging.Level, "warn")
	}
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled = false, want env override true")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() error = nil, want error")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "enforcement: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want error")
	}
}

func TestValidate_UnknownAlgorithm(t *testing.T) {
	cfg := Default()
	cfg.Enforcement.CombiningAlgorithm = "coin-flip"

	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for unknown algorithm")
	}
}

func TestValidate_UnknownModeIsAccepted(t *testing.T) {
	// An unrecognized mode fails closed at call time, not at load time.
	cfg := Default()
	cfg.Enforcement.Mode = "whatever"

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil for unknown mode", err)
	}
}

func TestValidate_UnknownStaticDecision(t *testing.T) {
	cfg := Default()
	cfg.Enforcement.StaticDecision = "Maybe"

	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for unknown static decision")
	}
}

func TestValidate_BadCronExpressions(t *testing.T) {
	cfg := Default()
	cfg.Policy.ReloadSchedule = "not cron"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for bad reload schedule")
	}

	cfg = Default()
	cfg.Audit.Enabled = true
	cfg.Audit.PruneSchedule = "* * *"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for bad prune schedule")
	}
}

func TestValidate_LoggingEnums(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for unknown log level")
	}

	cfg = Default()
	cfg.Logging.Format = "xml"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for unknown log format")
	}
}

func TestValidate_AuditBounds(t *testing.T) {
	cfg := Default()
	cfg.Audit.Enabled = true
	cfg.Audit.RetentionDays = -1
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for negative retention")
	}

	cfg = Default()
	cfg.Audit.Enabled = true
	cfg.Audit.DBPath = ""
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want error for empty db path")
	}
}
