package sync

import (
	"context"
	"runtime"
	"sort"
	"time"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

type taskResult struct {
	name string
	err  error
}

// runTopological executes install/update steps in a parallel topological
// order over a fixed worker pool (§4.H "Topological ordering"). A step
// becomes runnable once every dependency step within this run has
// completed; ties among runnable steps break by name for determinism.
//
// On cancellation, no further steps are scheduled; steps already running
// are allowed to finish (their staged output is simply never
// materialized further), and the rest are left unattempted so the
// library retains a consistent prefix of the plan.
//
// When a step fails, every step that transitively depends on it can
// never reach in-degree zero and so would otherwise vanish silently;
// runTopological walks the dependents graph from each failure and
// reports the whole downstream set as unreachable (§4.H "installer
// failure... mark its dependents unreachable").
func runTopological(ctx context.Context, input ports.SyncInput, steps []domain.PlanStep) (map[string]error, []string) {
	byName := make(map[string]domain.PlanStep, len(steps))
	inDegree := make(map[string]int, len(steps))
	dependents := make(map[string][]string)
	inSet := make(map[string]bool, len(steps))
	for _, s := range steps {
		inSet[s.Name] = true
	}
	for _, s := range steps {
		byName[s.Name] = s
		degree := 0
		if s.Node != nil {
			for _, dep := range s.Node.Deps {
				if inSet[dep] {
					degree++
					dependents[dep] = append(dependents[dep], s.Name)
				}
			}
		}
		inDegree[s.Name] = degree
	}

	var ready []string
	for name, d := range inDegree {
		if d == 0 {
			ready = append(ready, name)
		}
	}

	workers := input.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(map[string]error, len(steps))
	unreachable := make(map[string]bool)
	resultsCh := make(chan taskResult, workers)
	active := 0

	markUnreachable := func(failed string) {
		queue := append([]string(nil), dependents[failed]...)
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]
			if unreachable[name] {
				continue
			}
			unreachable[name] = true
			emitUnreachable(input.Progress, byName[name])
			queue = append(queue, dependents[name]...)
		}
	}

	for {
		cancelled := ctx.Err() != nil
		if cancelled && active == 0 {
			return results, sortedKeys(unreachable)
		}

		sort.Strings(ready)
		for !cancelled && len(ready) > 0 && active < workers {
			name := ready[0]
			ready = ready[1:]
			active++
			step := byName[name]
			emitStarted(input.Progress, step)
			go func() {
				resultsCh <- taskResult{name: step.Name, err: installStep(ctx, input, step)}
			}()
		}

		if active == 0 {
			return results, sortedKeys(unreachable)
		}

		res := <-resultsCh
		active--
		results[res.name] = res.err
		emitOutcome(input.Progress, byName[res.name], res.err)

		if res.err == nil {
			for _, dep := range dependents[res.name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					ready = append(ready, dep)
				}
			}
		} else {
			markUnreachable(res.name)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func emitUnreachable(sink ports.ProgressSink, step domain.PlanStep) {
	if sink == nil {
		return
	}
	sink.OnEvent(domain.ProgressEvent{Kind: domain.EventTaskUnreachable, Name: step.Name, Action: step.Action, At: time.Now()})
}

func emitStarted(sink ports.ProgressSink, step domain.PlanStep) {
	if sink == nil {
		return
	}
	sink.OnEvent(domain.ProgressEvent{Kind: domain.EventTaskStarted, Name: step.Name, Action: step.Action, At: time.Now()})
}

func emitOutcome(sink ports.ProgressSink, step domain.PlanStep, err error) {
	if sink == nil {
		return
	}
	kind := domain.EventTaskDone
	if err != nil {
		kind = domain.EventTaskFailed
	}
	sink.OnEvent(domain.ProgressEvent{Kind: kind, Name: step.Name, Action: step.Action, At: time.Now(), Err: err})
}
