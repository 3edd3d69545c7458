// Package sync implements the plan-execution engine (§4.H): removal
// safety checks, staged per-package installs, and a parallel
// topological executor over the resolved dependency graph.
package sync

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SyncEngine = (*Engine)(nil)

// Engine implements ports.SyncEngine.
type Engine struct{}

// New creates an Engine.
func New() *Engine {
	return &Engine{}
}

func (e *Engine) Run(ctx context.Context, input ports.SyncInput) (ports.SyncResult, error) {
	result := ports.SyncResult{Failed: make(map[string]error)}

	removed, deferred, removeFailed := e.runRemovals(ctx, input, stepsWithAction(input.Plan, domain.ActionRemove))
	result.Removed = removed
	result.Deferred = deferred
	for name, err := range removeFailed {
		result.Failed[name] = err
	}

	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	installSteps := append(
		stepsWithAction(input.Plan, domain.ActionInstall),
		stepsWithAction(input.Plan, domain.ActionUpdate)...,
	)
	actionByName := make(map[string]domain.PlanAction, len(installSteps))
	for _, s := range installSteps {
		actionByName[s.Name] = s.Action
	}

	stepResults, unreachable := runTopological(ctx, input, installSteps)
	result.Unreachable = unreachable

	for name, err := range stepResults {
		if err != nil {
			result.Failed[name] = err
			continue
		}
		switch actionByName[name] {
		case domain.ActionInstall:
			result.Installed = append(result.Installed, name)
		case domain.ActionUpdate:
			result.Updated = append(result.Updated, name)
		}
	}

	sort.Strings(result.Installed)
	sort.Strings(result.Updated)
	sort.Strings(result.Removed)
	sort.Strings(result.Deferred)

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if len(result.Failed) > 0 || len(result.Unreachable) > 0 {
		return result, zerr.With(domain.ErrInstallFailed, "failed_count", len(result.Failed))
	}
	return result, nil
}

// runRemovals removes every plan step marked for removal concurrently;
// removals carry no dependency ordering among themselves, so they run
// under a plain worker-limited pool rather than the topological
// scheduler. Each removal's outcome is isolated: one failure never
// aborts the others.
func (e *Engine) runRemovals(ctx context.Context, input ports.SyncInput, steps []domain.PlanStep) (removed, deferred []string, failed map[string]error) {
	failed = make(map[string]error)
	var mu sync.Mutex

	workers := input.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, step := range steps {
		step := step
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			emitStarted(input.Progress, step)
			isDeferred, err := removeStep(input, step)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				failed[step.Name] = err
				emitOutcome(input.Progress, step, err)
			case isDeferred:
				deferred = append(deferred, step.Name)
				if input.Progress != nil {
					input.Progress.OnEvent(domain.ProgressEvent{Kind: domain.EventTaskDeferred, Name: step.Name, Action: step.Action, At: time.Now()})
				}
			default:
				removed = append(removed, step.Name)
				emitOutcome(input.Progress, step, nil)
			}
			return nil
		})
	}
	_ = g.Wait()

	return removed, deferred, failed
}

func stepsWithAction(p domain.Plan, action domain.PlanAction) []domain.PlanStep {
	var out []domain.PlanStep
	for _, s := range p.Steps {
		if s.Action == action {
			out = append(out, s)
		}
	}
	return out
}
