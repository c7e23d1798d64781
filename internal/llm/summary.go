package llm

import (
	"context"
	"strings"
)

func (c *client) SummarizeRun(ctx context.Context, in SummaryInput) (string, error) {
	var sb strings.Builder
	sb.WriteString("TASK:\n" + in.Task + "\n\n")
	sb.WriteString("EXIT_REASON:\n" + in.ExitReason + "\n\n")
	sb.WriteString("DURATION:\n" + in.Duration + "\n\n")

	if in.FinalURL != "" {
		sb.WriteString("FINAL_URL:\n" + in.FinalURL + "\n\n")
	}

	if len(in.Steps) > 0 {
		sb.WriteString("STEPS:\n")
		for _, s := range in.Steps {
			sb.WriteString(s + "\n")
		}
	}

	return c.CompleteText(ctx, summarySystemPrompt, sb.String())
}
