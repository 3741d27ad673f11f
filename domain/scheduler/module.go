package scheduler

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/emergent-company/lineage-engine/internal/registry"
)

// Module provides scheduled task functionality.
var Module = fx.Module("scheduler",
	fx.Provide(
		NewConfig,
		NewScheduler,
	),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for creating scheduled tasks.
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Cache     *registry.Cache
	Log       *slog.Logger
	Cfg       *Config
}

// RegisterTasks registers the periodic registry cache refresh task. The
// initial load is done by RegisterSchedulerLifecycle's OnStart hook.
func RegisterTasks(p TaskParams) error {
	if !p.Cfg.Enabled {
		p.Log.Info("scheduler disabled, skipping task registration")
		return nil
	}

	refresh := func(ctx context.Context) error {
		return p.Cache.Refresh(ctx)
	}

	err := addScheduledTask(p.Scheduler, p.Log, "registry_refresh", p.Cfg.RegistryRefreshSchedule, p.Cfg.RegistryRefreshInterval, refresh)
	if err != nil {
		p.Log.Error("failed to register registry refresh task", slog.String("error", err.Error()))
	}

	p.Log.Info("registered scheduled tasks", slog.Any("tasks", p.Scheduler.ListTasks()))
	return nil
}

// addScheduledTask registers task under name using cronSchedule when
// set, falling back to a fixed interval otherwise.
func addScheduledTask(s *Scheduler, log *slog.Logger, name, cronSchedule string, interval time.Duration, task TaskFunc) error {
	if cronSchedule != "" {
		return s.AddCronTask(name, cronSchedule, task)
	}
	return s.AddIntervalTask(name, interval, task)
}

// RegisterSchedulerLifecycle registers the scheduler, and an initial
// registry load, with the fx lifecycle.
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler, cache *registry.Cache, cfg *Config, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cache.Refresh(ctx); err != nil {
				log.Error("initial registry load failed", slog.String("error", err.Error()))
			}
			if !cfg.Enabled {
				return nil
			}
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			if !cfg.Enabled {
				return nil
			}
			return scheduler.Stop(ctx)
		},
	})
}
