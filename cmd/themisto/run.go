package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"mercator-hq/themisto/pkg/audit"
	"mercator-hq/themisto/pkg/config"
	"mercator-hq/themisto/pkg/decision"
	"mercator-hq/themisto/pkg/decision/engine"
	"mercator-hq/themisto/pkg/pep"
	"mercator-hq/themisto/pkg/policy"
	"mercator-hq/themisto/pkg/telemetry/logging"
	"mercator-hq/themisto/pkg/telemetry/metrics"
)

var runFlags struct {
	mode     string
	logLevel string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the enforcement runtime",
	Long: `Start the enforcement runtime with the specified configuration.

The runtime composes the configured policy sources into a decision engine,
installs it behind the enforcement gateway, and keeps it fresh through file
watching and scheduled reloads until interrupted.

Examples:
  # Start with default config
  themisto run

  # Start with custom config
  themisto run --config /etc/themisto/config.yaml

  # Override the enforcement mode
  themisto run --mode permit-all`,
	RunE: runRuntime,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.mode, "mode", "", "override enforcement mode (enforce-policies, permit-all, deny-all)")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.mode != "" {
		cfg.Enforcement.Mode = runFlags.mode
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	// Metrics endpoint.
	var collector *metrics.Collector
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Metrics)
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsServer = &http.Server{
			Addr:    cfg.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", cfg.Metrics.ListenAddress)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	// Audit trail.
	var recorder *audit.Recorder
	var auditStorage *audit.SQLiteStorage
	if cfg.Audit.Enabled {
		storageCfg := audit.DefaultSQLiteConfig()
		storageCfg.Path = cfg.Audit.DBPath
		auditStorage, err = audit.NewSQLiteStorage(storageCfg, logger)
		if err != nil {
			return fmt.Errorf("failed to open audit storage: %w", err)
		}
		defer auditStorage.Close()

		recorderCfg := audit.DefaultRecorderConfig()
		recorderCfg.AsyncBuffer = cfg.Audit.AsyncBuffer
		recorder = audit.NewRecorder(auditStorage, recorderCfg, logger)
		defer recorder.Close()

		pruner := audit.NewPruner(auditStorage, &audit.RetentionConfig{
			RetentionDays: cfg.Audit.RetentionDays,
			MaxRecords:    cfg.Audit.MaxRecords,
			PruneSchedule: cfg.Audit.PruneSchedule,
		}, logger)
		scheduler := audit.NewScheduler(pruner, logger)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
	}

	// Enforcement gateway.
	gatewayCfg := pep.GatewayConfig{
		Mode:   pep.ParseMode(cfg.Enforcement.Mode),
		Logger: logger,
	}
	if collector != nil {
		gatewayCfg.Metrics = collector.Enforcement
	}
	if recorder != nil {
		gatewayCfg.Audit = recorder
	}
	gateway := pep.NewGateway(gatewayCfg)

	if err := gateway.Configure(engineFactory(cfg, logger)); err != nil {
		return fmt.Errorf("failed to configure decision engine: %w", err)
	}

	// Reload callers (watcher, cron) run on the runtime context; pull the
	// logger back out of it so their failures land on the runtime logger.
	reload := func() error {
		if err := gateway.Reload(); err != nil {
			logging.FromContext(ctx).Error("policy reload failed", "error", err)
			return err
		}
		return nil
	}

	// File watching.
	if cfg.Policy.Watch {
		paths := []string{cfg.Policy.RepositoryDir}
		if cfg.Policy.DescriptorPath != "" {
			paths = append(paths, cfg.Policy.DescriptorPath)
		}
		watcherCfg := policy.DefaultWatcherConfig()
		watcherCfg.Paths = paths
		if cfg.Policy.DebounceInterval > 0 {
			watcherCfg.DebounceInterval = cfg.Policy.DebounceInterval
		}
		watcher, err := policy.NewWatcher(watcherCfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create policy watcher: %w", err)
		}
		go func() {
			if err := watcher.Watch(ctx, reload); err != nil {
				logger.Error("policy watcher failed", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	// Scheduled reloads.
	if cfg.Policy.ReloadSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.Policy.ReloadSchedule, func() { reload() }); err != nil {
			return fmt.Errorf("failed to schedule policy reload: %w", err)
		}
		c.Start()
		defer c.Stop()
		logger.Info("policy reload scheduled", "schedule", cfg.Policy.ReloadSchedule)
	}

	logger.Info("enforcement runtime started",
		"mode", gateway.Mode().String(),
		"repository_dir", cfg.Policy.RepositoryDir,
		"audit_enabled", cfg.Audit.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	gateway.Deactivate()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}

	return nil
}

// engineFactory builds the engine construction closure the gateway runs on
// Configure and every Reload. Each invocation regenerates descriptor
// policies and composes a fresh immutable policy set.
func engineFactory(cfg *config.Config, logger *slog.Logger) pep.EngineFactory {
	return func(env *pep.EngineEnv) (decision.Engine, error) {
		generatedDir := ""
		if cfg.Policy.DescriptorPath != "" {
			generator := policy.NewGenerator(cfg.Policy.DescriptorPath, cfg.Policy.WorkDir, logger)
			dir, err := generator.Generate()
			if err != nil {
				return nil, err
			}
			generatedDir = dir
		}

		composer, err := policy.NewComposer(policy.ComposerConfig{
			RepositoryDir: cfg.Policy.RepositoryDir,
			GeneratedDir:  generatedDir,
			Algorithm:     cfg.Enforcement.CombiningAlgorithm,
			Logger:        logger,
		})
		if err != nil {
			return nil, err
		}

		return engine.NewStatic(&engine.Config{
			Finder:    composer,
			Resolvers: []decision.AttributeResolver{pep.NewContextResolver(env.Registry)},
			Decision:  decision.Decision(cfg.Enforcement.StaticDecision),
			Logger:    logger,
		})
	}
}
