package domain

import "time"

// ProgressEventKind is one of the well-defined event kinds the sync
// engine emits to its progress sink (§9 "Progress reporting is a
// collaborator, not a core concern").
type ProgressEventKind string

// The progress event kinds emitted by the sync engine.
const (
	EventTaskStarted     ProgressEventKind = "task-started"
	EventTaskDone        ProgressEventKind = "task-done"
	EventTaskFailed      ProgressEventKind = "task-failed"
	EventTaskDeferred    ProgressEventKind = "task-deferred"
	EventTaskUnreachable ProgressEventKind = "task-unreachable"
)

// ProgressEvent is one occurrence reported to a progress sink during a
// sync run.
type ProgressEvent struct {
	Kind      ProgressEventKind
	Name      string
	Action    PlanAction
	At        time.Time
	Err       error
}
