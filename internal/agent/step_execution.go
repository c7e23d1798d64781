package agent

import (
	"context"
	"fmt"
	"strings"

	"browserlauncher/internal/llm"
)

func (r *Runner) executeStep(ctx context.Context, step int) (bool, error) {
	fmt.Printf("\n--- STEP %d ---\n", step)

	snap, err := r.agent.driver.Snapshot()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSnapshotFail, err)
	}

	if r.prevTree != "" && snap.Tree == r.prevTree {
		r.mem.AddSystemNote("SYSTEM ALERT: Last action had NO VISIBLE EFFECT.")
	}

	fmt.Printf("URL: %s\nTitle: %s\n", snap.URL, snap.Title)

	var planContext string
	if r.plan != nil {
		planContext = r.plan.Context()
	}

	decision, err := r.agent.llm.DecideAction(ctx, llm.DecisionInput{
		Task:        r.task,
		DOMTree:     snap.Tree,
		CurrentURL:  snap.URL,
		History:     r.mem.HistoryString(),
		PlanContext: planContext,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLLMFail, err)
	}

	r.reporter.LogDecision(step, snap.URL, decision)

	if blocked, reason := r.mem.ShouldBlock(snap.URL, decision.Action); blocked {
		fmt.Printf("⛔ LOOP GUARD: %s\n", reason)
		r.mem.AddSystemNote(reason)
		r.mem.MarkLoopTriggered()
		// Nudge the page so the next snapshot looks different.
		if err := r.agent.driver.ScrollDown(); err != nil {
			r.agent.log.WithError(err).Debug("scroll nudge failed")
		}
		r.prevTree = snap.Tree
		return false, nil
	}

	if decision.Action.Type == llm.ActionFinish {
		fmt.Println("✅ Task completed!")
		return true, nil
	}

	if err := r.agent.executeAction(decision.Action); err != nil {
		r.mem.AddSystemNote(fmt.Sprintf("SYSTEM ERROR: %v", err))
	} else {
		r.mem.Add(step, snap.URL, decision.Action)
		r.mem.AddSystemNote(fmt.Sprintf(
			"STATE UPDATE: %s | %s",
			strings.ToUpper(decision.CurrentPhase),
			decision.Observation,
		))
	}

	r.prevTree = snap.Tree
	return false, nil
}
