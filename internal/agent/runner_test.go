package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browserlauncher/internal/browser"
	"browserlauncher/internal/llm"
)

// fakeDriver counts calls and can fail the first N snapshots.
type fakeDriver struct {
	snapshots   int
	snapshotErr error
	failSteps   int // 0 with snapshotErr set means "always fail"
	clicks      int
	scrolls     int
}

func (d *fakeDriver) Goto(url string) error { return nil }

func (d *fakeDriver) Snapshot() (*browser.Snapshot, error) {
	d.snapshots++
	if d.snapshotErr != nil && (d.failSteps == 0 || d.snapshots <= d.failSteps) {
		return nil, d.snapshotErr
	}
	return &browser.Snapshot{
		URL:   "https://example.com",
		Title: "Example",
		Tree:  fmt.Sprintf("[1] <a label=\"link\"> (snapshot %d)", d.snapshots),
	}, nil
}

func (d *fakeDriver) Click(targetID int) error { d.clicks++; return nil }

func (d *fakeDriver) Fill(targetID int, text string, submit bool) error { return nil }

func (d *fakeDriver) ScrollDown() error { d.scrolls++; return nil }

func (d *fakeDriver) Highlight(targetID int) {}

func (d *fakeDriver) URL() string { return "https://example.com" }

func (d *fakeDriver) Close() error { return nil }

// fakeLLM feeds canned decisions to the runner.
type fakeLLM struct {
	decide  func(call int) *llm.DecisionOutput
	calls   int
	summary string
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	return "", nil
}

func (f *fakeLLM) CompleteText(ctx context.Context, system, user string) (string, error) {
	return "", nil
}

func (f *fakeLLM) DecideAction(ctx context.Context, in llm.DecisionInput) (*llm.DecisionOutput, error) {
	f.calls++
	return f.decide(f.calls), nil
}

func (f *fakeLLM) SummarizeRun(ctx context.Context, in llm.SummaryInput) (string, error) {
	return f.summary, nil
}

func decideAlways(action llm.Action) func(int) *llm.DecisionOutput {
	return func(int) *llm.DecisionOutput {
		return &llm.DecisionOutput{CurrentPhase: "execution", Action: action}
	}
}

func newTestRunner(d browser.Driver, c llm.Client, maxSteps int) *Runner {
	r := NewRunner(New(d, c), "test task", maxSteps)
	r.pause = 0
	return r
}

func TestRunFinishesOnFinishAction(t *testing.T) {
	driver := &fakeDriver{}
	client := &fakeLLM{decide: decideAlways(llm.Action{Type: llm.ActionFinish}), summary: "all done"}

	result, err := newTestRunner(driver, client, 5).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "all done", result)

	// Exactly one decision, no retry.
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, driver.snapshots)
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	driver := &fakeDriver{}
	client := &fakeLLM{decide: decideAlways(llm.Action{Type: llm.ActionScroll}), summary: "ran out"}

	result, err := newTestRunner(driver, client, 2).Run(context.Background())
	assert.ErrorIs(t, err, ErrMaxSteps)
	assert.Equal(t, "ran out", result)
	assert.Equal(t, 2, client.calls)
}

func TestRunAbortsAfterConsecutiveErrors(t *testing.T) {
	driver := &fakeDriver{snapshotErr: errors.New("browser gone")}
	client := &fakeLLM{decide: decideAlways(llm.Action{Type: llm.ActionFinish})}

	_, err := newTestRunner(driver, client, 10).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotFail)

	// Aborted well before the step budget, without reaching the model.
	assert.Equal(t, maxConsecutiveErrors, driver.snapshots)
	assert.Zero(t, client.calls)
}

func TestRunRecoversFromTransientErrors(t *testing.T) {
	driver := &fakeDriver{snapshotErr: errors.New("flaky"), failSteps: maxConsecutiveErrors - 1}
	client := &fakeLLM{decide: decideAlways(llm.Action{Type: llm.ActionFinish}), summary: "done"}

	result, err := newTestRunner(driver, client, 10).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, maxConsecutiveErrors, driver.snapshots)
}

func TestRunLoopGuardNudgesInsteadOfRepeating(t *testing.T) {
	driver := &fakeDriver{}
	client := &fakeLLM{decide: decideAlways(llm.Action{Type: llm.ActionClick, TargetID: 5})}

	r := newTestRunner(driver, client, 5)
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrMaxSteps)

	// The repeating click gets blocked and replaced by scroll nudges.
	assert.True(t, r.mem.LoopTriggered())
	assert.Equal(t, 2, driver.clicks)
	assert.Equal(t, 3, driver.scrolls)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	driver := &fakeDriver{}
	client := &fakeLLM{decide: decideAlways(llm.Action{Type: llm.ActionFinish})}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner(driver, client, 5).Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Zero(t, driver.snapshots)
}
