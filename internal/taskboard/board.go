// Package taskboard tracks the lifecycle of the generation tasks for one
// file. The board is the single source of truth the status renderer reads.
package taskboard

// TaskState is the lifecycle state of one generation task.
type TaskState string

const (
	TaskPending   TaskState = "PENDING"
	TaskSucceeded TaskState = "SUCCEEDED"
	TaskTimedOut  TaskState = "TIMED_OUT"
	TaskFailed    TaskState = "FAILED"
)

// Terminal reports whether a task in this state will never change again.
func (s TaskState) Terminal() bool {
	return s != TaskPending
}

// Task is one generation request for one undocumented function.
type Task struct {
	Function string
	State    TaskState

	// Result and Cost are set only when State is TaskSucceeded.
	Result string
	Cost   float64

	// Err holds the failure message for TaskTimedOut and TaskFailed.
	Err string
}

// Status is a read-only snapshot of a task, safe to hand to renderers.
type Status struct {
	Function string
	State    TaskState
}

// Board holds the ordered tasks of one file. It is created when dispatch
// begins, mutated as completions are consumed, finalized once every task is
// terminal, then discarded.
//
// All mutation happens on the coordinating goroutine; workers report results
// over a channel and never touch the board. That confinement is what makes
// the board lock-free.
type Board struct {
	file      string
	order     []string
	tasks     map[string]*Task
	finalized bool
}

// NewBoard creates a board with one pending task per function, preserving
// source order.
func NewBoard(file string, functions []string) *Board {
	b := &Board{
		file:  file,
		tasks: make(map[string]*Task, len(functions)),
	}
	for _, fn := range functions {
		if _, ok := b.tasks[fn]; ok {
			continue
		}
		b.order = append(b.order, fn)
		b.tasks[fn] = &Task{Function: fn, State: TaskPending}
	}
	return b
}

// File returns the file identity the board was created for.
func (b *Board) File() string {
	return b.file
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	return len(b.order)
}

// MarkSucceeded transitions a task to SUCCEEDED with its generated text and
// reported cost.
func (b *Board) MarkSucceeded(function, result string, cost float64) {
	if t, ok := b.tasks[function]; ok && !t.State.Terminal() {
		t.State = TaskSucceeded
		t.Result = result
		t.Cost = cost
	}
}

// MarkTimedOut transitions a task to TIMED_OUT.
func (b *Board) MarkTimedOut(function, message string) {
	if t, ok := b.tasks[function]; ok && !t.State.Terminal() {
		t.State = TaskTimedOut
		t.Err = message
	}
}

// MarkFailed transitions a task to FAILED.
func (b *Board) MarkFailed(function, message string) {
	if t, ok := b.tasks[function]; ok && !t.State.Terminal() {
		t.State = TaskFailed
		t.Err = message
	}
}

// AllResolved reports whether every task has reached a terminal state.
func (b *Board) AllResolved() bool {
	for _, fn := range b.order {
		if !b.tasks[fn].State.Terminal() {
			return false
		}
	}
	return true
}

// Finalize marks the board complete. It is a defect to finalize before all
// tasks are terminal, so that case is ignored.
func (b *Board) Finalize() {
	if b.AllResolved() {
		b.finalized = true
	}
}

// Finalized reports whether Finalize has been called on a fully resolved
// board.
func (b *Board) Finalized() bool {
	return b.finalized
}

// Statuses returns a snapshot of every task in source order.
func (b *Board) Statuses() []Status {
	statuses := make([]Status, 0, len(b.order))
	for _, fn := range b.order {
		statuses = append(statuses, Status{Function: fn, State: b.tasks[fn].State})
	}
	return statuses
}

// Succeeded returns the tasks that completed successfully, in source order.
func (b *Board) Succeeded() []*Task {
	var done []*Task
	for _, fn := range b.order {
		if t := b.tasks[fn]; t.State == TaskSucceeded {
			done = append(done, t)
		}
	}
	return done
}

// FailedCount returns how many tasks failed or timed out.
func (b *Board) FailedCount() int {
	n := 0
	for _, fn := range b.order {
		if s := b.tasks[fn].State; s == TaskFailed || s == TaskTimedOut {
			n++
		}
	}
	return n
}
