package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"acme-insurance/tarifa/pkg/audit"
	"acme-insurance/tarifa/pkg/audit/recorder"
	"acme-insurance/tarifa/pkg/audit/retention"
	auditstorage "acme-insurance/tarifa/pkg/audit/storage"
	"acme-insurance/tarifa/pkg/cli"
	"acme-insurance/tarifa/pkg/config"
	"acme-insurance/tarifa/pkg/generator"
	"acme-insurance/tarifa/pkg/quote"
	"acme-insurance/tarifa/pkg/storage"
	"acme-insurance/tarifa/pkg/telemetry/logging"
	"acme-insurance/tarifa/pkg/telemetry/metrics"
)

// now is the FecCot clock. Tests replace it.
var now = time.Now

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	store   *storage.Local
	service *generator.Service

	// Set only when the audit trail is enabled and could be opened.
	auditStore audit.Storage
	pruner     *retention.Pruner
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, cli.NewConfigError("clock.timezone", err.Error())
	}

	mapper := quote.NewMapper(
		quote.WithClock(now),
		quote.WithLocation(loc),
		quote.WithMarshalOptions(quote.MarshalOptions{
			Indent:      cfg.Output.Indent,
			Declaration: cfg.Output.Declaration,
		}),
	)

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  storage.NewLocal(cfg.Storage.Root),
	}
	logger.Debug("resource store ready", "root", a.store.Root())

	opts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithMetrics(metrics.NewCollector(&cfg.Telemetry.Metrics, nil)),
	}

	if cfg.Audit.Enabled {
		if err := a.openAudit(); err != nil {
			// The audit trail never blocks generation.
			logger.Warn("audit trail unavailable", "path", cfg.Audit.Path, "error", err)
		} else {
			opts = append(opts, generator.WithAudit(recorder.NewRecorder(a.auditStore, nil)))
		}
	}

	a.service = generator.New(a.store, mapper, opts...)
	return a, nil
}

func (a *app) openAudit() error {
	store, err := auditstorage.NewSQLiteStorage(&auditstorage.SQLiteConfig{
		Driver:      a.cfg.Audit.Driver,
		Path:        a.cfg.Audit.Path,
		WALMode:     true,
		BusyTimeout: a.cfg.Audit.BusyTimeout,
	})
	if err != nil {
		return err
	}

	a.auditStore = store
	a.pruner = retention.NewPruner(store, &retention.Config{
		RetentionDays: a.cfg.Audit.Retention.Days,
		MaxRecords:    a.cfg.Audit.Retention.MaxRecords,
		PruneSchedule: a.cfg.Audit.Retention.Schedule,
	})
	return nil
}

// requireAudit returns an error unless the audit trail is open.
func (a *app) requireAudit() error {
	if !a.cfg.Audit.Enabled {
		return cli.NewConfigError("audit.enabled", "audit trail is disabled")
	}
	if a.auditStore == nil {
		return cli.NewCommandError("audit", fmt.Errorf("audit database %q could not be opened", a.cfg.Audit.Path))
	}
	return nil
}

func (a *app) Close() error {
	if a.auditStore != nil {
		return a.auditStore.Close()
	}
	return nil
}
