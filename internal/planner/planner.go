// Package planner decomposes a natural-language task into high-level steps
// before the browser loop starts.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"browserlauncher/internal/llm"
)

const (
	ModeNavigation  = "navigation"
	ModeInteraction = "interaction"
)

type PlanStep struct {
	Index int    `json:"index"`
	Goal  string `json:"goal"`
	Mode  string `json:"mode"` // "navigation" or "interaction"
}

type Plan struct {
	Steps []PlanStep `json:"steps"`
}

// Context renders the plan for inclusion in the decision prompt.
func (p *Plan) Context() string {
	if p == nil || len(p.Steps) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range p.Steps {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", s.Index, s.Mode, s.Goal)
	}
	return strings.TrimRight(sb.String(), "\n")
}

const plannerSystemPrompt = `
You are a high-level task planner for a web-browsing agent.

Your job is to decompose a single natural-language user request into
a small sequence of high-level steps.

Each step must have:
- "index": integer starting from 1
- "goal": what should be achieved in this step
- "mode": either "navigation" or "interaction"

"navigation":
  - moving between pages or sections
  - opening a site, choosing a category or product list

"interaction":
  - working inside a specific page or modal
  - filling forms, selecting options, pressing confirm buttons

Return a JSON object of the form:
{
  "steps": [
    { "index": 1, "goal": "...", "mode": "navigation" },
    { "index": 2, "goal": "...", "mode": "interaction" }
  ]
}

Do not include any other fields.
Keep steps concise but informative.
`

// BuildPlan asks the active provider for a 3-7 step plan.
func BuildPlan(ctx context.Context, c llm.Client, task string) (*Plan, error) {
	userMsg := fmt.Sprintf("User task:\n%s\n\nProduce 3-7 high-level steps.", task)

	content, err := c.CompleteJSON(ctx, plannerSystemPrompt, userMsg)
	if err != nil {
		return nil, fmt.Errorf("planner error: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &plan); err != nil {
		return nil, fmt.Errorf("planner JSON parse error: %w | content: %s", err, content)
	}

	normalize(&plan)
	return &plan, nil
}

func normalize(plan *Plan) {
	for i := range plan.Steps {
		if plan.Steps[i].Index == 0 {
			plan.Steps[i].Index = i + 1
		}
		mode := strings.ToLower(strings.TrimSpace(plan.Steps[i].Mode))
		if mode != ModeNavigation && mode != ModeInteraction {
			// Rough heuristic: anything like "search / go to / open" is navigation.
			goal := strings.ToLower(plan.Steps[i].Goal)
			if strings.Contains(goal, "search") ||
				strings.Contains(goal, "go to") ||
				strings.Contains(goal, "open") {
				mode = ModeNavigation
			} else {
				mode = ModeInteraction
			}
		}
		plan.Steps[i].Mode = mode
	}
}
