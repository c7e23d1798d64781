package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"browserlauncher/internal/llm"
)

// Reporter prints per-step decisions and assembles the final run report.
type Reporter struct {
	llm   llm.Client
	task  string
	runID string
	trace []string
	log   *logrus.Entry

	finalURL string
}

func NewReporter(llmClient llm.Client, task, runID string) *Reporter {
	return &Reporter{
		llm:   llmClient,
		task:  task,
		runID: runID,
		log:   logrus.WithField("component", "agent").WithField("run_id", runID),
	}
}

func (r *Reporter) LogDecision(step int, url string, d *llm.DecisionOutput) {
	decor := ""
	if d.Action.IsDestructive {
		decor = " [DESTRUCTIVE]"
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("🧠 PHASE:       %s\n", strings.ToUpper(d.CurrentPhase))
	fmt.Printf("👀 OBSERVATION: %s\n", d.Observation)
	fmt.Printf("🤖 THOUGHT:     %s\n", d.Thought)
	fmt.Printf("⚡ ACTION:      %s [%d] %q%s\n",
		d.Action.Type,
		d.Action.TargetID,
		d.Action.Text,
		decor,
	)
	fmt.Println(strings.Repeat("-", 40))

	r.finalURL = url

	r.trace = append(r.trace, fmt.Sprintf(
		"STEP %d | URL=%s | PHASE=%s | ACTION=%s[%d] %q%s | OBS=%s",
		step,
		url,
		strings.ToUpper(d.CurrentPhase),
		d.Action.Type,
		d.Action.TargetID,
		d.Action.Text,
		decor,
		d.Observation,
	))
}

func (r *Reporter) StepError(err error) {
	color.Yellow("⚠️ Step error: %v", err)
	r.log.WithError(err).Warn("step failed")
}

// FinalReport prints the trace and returns the run's result text: the LLM
// summary when one could be produced, the exit reason otherwise.
func (r *Reporter) FinalReport(ctx context.Context, start time.Time, reason string, mem *StepMemory) string {
	duration := time.Since(start).Truncate(time.Millisecond)

	fmt.Println("\n===== EXECUTION REPORT =====")
	fmt.Printf("Run: %s\n", r.runID)
	fmt.Printf("Task: %s\n", r.task)
	fmt.Printf("Duration: %s\n", duration)
	fmt.Printf("Exit reason: %s\n\n", reason)

	fmt.Println("--- RAW STEP TRACE ---")
	for _, line := range r.trace {
		fmt.Println(line)
	}

	result := reason
	summary, err := r.llm.SummarizeRun(ctx, llm.SummaryInput{
		Task:       r.task,
		ExitReason: reason,
		FinalURL:   r.finalURL,
		Duration:   duration.String(),
		Steps:      mem.FullHistory(),
	})
	if err != nil {
		r.log.WithError(err).Warn("failed to generate summary")
	} else {
		fmt.Println("\n--- LLM SUMMARY ---")
		fmt.Println(summary)
		result = summary
	}

	fmt.Println("===== END OF REPORT =====")
	return result
}
