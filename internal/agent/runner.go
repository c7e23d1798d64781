package agent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"browserlauncher/internal/planner"
)

var (
	ErrInterrupted  = errors.New("execution interrupted")
	ErrMaxSteps     = errors.New("max steps reached")
	ErrSnapshotFail = errors.New("snapshot error")
	ErrLLMFail      = errors.New("llm error")
)

// After this many consecutive failed steps the run is abandoned; a broken
// credential or dead browser would otherwise burn the whole step budget.
const maxConsecutiveErrors = 3

const stepPause = 2 * time.Second

// Runner executes one task to completion. It is single-use: every dispatch
// constructs a fresh Runner and the run is awaited exactly once.
type Runner struct {
	agent      *Agent
	task       string
	maxSteps   int
	mem        *StepMemory
	reporter   *Reporter
	signalCtrl *SignalController
	plan       *planner.Plan
	prevTree   string
	pause      time.Duration

	consecutiveErrs int
}

func NewRunner(a *Agent, task string, maxSteps int) *Runner {
	runID := uuid.NewString()
	return &Runner{
		agent:      a,
		task:       task,
		maxSteps:   maxSteps,
		mem:        NewStepMemory(10, 3),
		reporter:   NewReporter(a.llm, task, runID),
		signalCtrl: NewSignalController(),
		pause:      stepPause,
	}
}

// WithPlan attaches an optional high-level plan whose steps are shown to
// the model alongside the task.
func (r *Runner) WithPlan(p *planner.Plan) *Runner {
	r.plan = p
	return r
}

// Run drives the step loop until the model finishes, the step budget runs
// out, or the user interrupts. The returned string is the run's result text
// for display; it is valid even when an error is returned.
func (r *Runner) Run(ctx context.Context) (string, error) {
	start := time.Now()
	defer r.signalCtrl.Close()

	for step := 1; step <= r.maxSteps; step++ {
		if r.signalCtrl.Interrupted() || ctx.Err() != nil {
			return r.reporter.FinalReport(ctx, start, "interrupted by user (Ctrl+C)", r.mem), ErrInterrupted
		}

		finished, err := r.executeStep(ctx, step)
		if err != nil {
			r.reporter.StepError(err)
			r.consecutiveErrs++
			if r.consecutiveErrs >= maxConsecutiveErrors {
				return r.reporter.FinalReport(ctx, start, "aborted after repeated step errors", r.mem), err
			}
		} else {
			r.consecutiveErrs = 0
		}

		if finished {
			return r.reporter.FinalReport(ctx, start, "task finished", r.mem), nil
		}

		time.Sleep(r.pause)
	}

	return r.reporter.FinalReport(ctx, start, "max steps reached", r.mem), ErrMaxSteps
}
