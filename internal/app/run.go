package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/exclusion"
	"github.com/specialistvlad/impactgridgo/internal/executor"
	"github.com/specialistvlad/impactgridgo/internal/live"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/specialistvlad/impactgridgo/internal/report"
	"github.com/specialistvlad/impactgridgo/internal/resolver"
	"github.com/specialistvlad/impactgridgo/internal/scheduler"
)

// Run executes one end-to-end orchestrator invocation and returns its
// verdict.
func (a *App) Run(ctx context.Context, appConfig *Config) (*model.RunVerdict, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(appConfig.HealthcheckPort)
	}

	runID := model.NewRunID()
	a.logger.Info("Run starting.", "run_id", runID, "scope", appConfig.Scope.String())

	changedPaths := appConfig.ChangedPaths
	if appConfig.FullRun {
		changedPaths = append([]string{model.FullRunSentinel}, changedPaths...)
	}

	rsl := resolver.New(a.grid, a.graph)
	targets := rsl.Resolve(ctx, changedPaths, appConfig.Scope)
	a.logger.Info("🔍 Impact resolution complete.", "targets", len(targets))

	if appConfig.ResolveOnly {
		for _, t := range targets {
			fmt.Fprintln(a.outW, t.Name)
		}
		return report.Finalize(runID, nil), nil
	}

	var verdict *model.RunVerdict
	switch {
	case appConfig.SkipDirective:
		a.logger.Info("⏭️ Skip directive present, short-circuiting run.")
		verdict = report.Finalize(runID, nil)
	case len(targets) == 0:
		a.logger.Info("Nothing to test, no targets resolved.")
		verdict = report.Finalize(runID, nil)
	default:
		verdict = a.executeRun(ctx, appConfig, runID, targets)
	}

	a.publish(ctx, appConfig, verdict)

	a.logger.Info("🏁 Run finished.", "run_id", runID, "overall", string(verdict.Overall), "failing", verdict.Failing)
	a.logger.Debug("App.Run method finished.")
	return verdict, nil
}

// executeRun schedules and executes the resolved targets, streaming events
// to the live sink when one is configured.
func (a *App) executeRun(ctx context.Context, appConfig *Config, runID string, targets []*model.Target) *model.RunVerdict {
	var sink *live.Sink
	if appConfig.LiveURL != "" {
		var err error
		sink, err = live.NewSink(ctx, appConfig.LiveURL, appConfig.LiveNamespace, runID)
		if err != nil {
			// Live streaming is best-effort observability, never a
			// reason to fail the run.
			a.logger.Warn("Live event sink unavailable, continuing without it.", "error", err)
		} else {
			defer sink.Close()
		}
	}

	locks := exclusion.New()
	exec := executor.New(a.runner, appConfig.TargetTimeout)
	sched := scheduler.New(a.registry, locks, exec, appConfig.EnvWaitTimeout)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for assignment := range sched.Events() {
			a.logger.Info("📣 Assignment completed.",
				"target", assignment.Target.Name,
				"environment", assignment.EnvironmentID(),
				"status", string(assignment.Status),
				"reason", string(assignment.Reason))
			if sink != nil {
				sink.EmitAssignment(ctx, assignment)
			}
		}
	}()

	a.logger.Info("🚀 Starting concurrent execution...", "targets", len(targets))
	assignments := sched.Run(ctx, targets)
	<-drained

	verdict := report.Finalize(runID, assignments)
	if sink != nil {
		sink.EmitVerdict(ctx, report.FromVerdict(verdict))
	}
	return verdict
}

// publish writes the report to every configured sink. Delivery problems are
// logged and surfaced in the logs, but never change the verdict.
func (a *App) publish(ctx context.Context, appConfig *Config, verdict *model.RunVerdict) {
	rep := report.FromVerdict(verdict)

	if appConfig.ReportPath != "" {
		if err := rep.WriteToPath(appConfig.ReportPath, a.outW); err != nil {
			a.logger.Error("Failed to write report.", "path", appConfig.ReportPath, "error", err)
		}
	}

	if appConfig.ReportURL != "" {
		webhook := report.NewWebhookSink(appConfig.ReportURL)
		defer webhook.Close()
		if err := webhook.Publish(ctx, rep); err != nil {
			a.logger.Error("Failed to deliver report webhook.", "error", err)
		}
	}
}
