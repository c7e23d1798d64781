package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// DOM trees can be enormous; keep the prompt within a safe budget.
const safeDOMLimit = 60000

// client binds the shared decision/summary logic to one provider backend.
type client struct {
	backend
}

// backend is the minimal chat surface a provider implementation supplies.
type backend interface {
	Provider() string
	CompleteJSON(ctx context.Context, system, user string) (string, error)
	CompleteText(ctx context.Context, system, user string) (string, error)
}

func (c *client) DecideAction(ctx context.Context, in DecisionInput) (*DecisionOutput, error) {
	var sb strings.Builder
	sb.WriteString("USER TASK: " + in.Task + "\n")
	sb.WriteString("CURRENT URL: " + in.CurrentURL + "\n")

	if in.PlanContext != "" {
		sb.WriteString("\nPLAN:\n" + in.PlanContext + "\n")
	}
	if in.History != "" {
		sb.WriteString("\nHISTORY:\n" + in.History + "\n")
	}

	dom := in.DOMTree
	if len(dom) > safeDOMLimit {
		dom = dom[:safeDOMLimit] + "\n...[TRUNCATED]"
	}
	sb.WriteString("\nDOM:\n" + dom)

	content, err := c.CompleteJSON(ctx, decisionSystemPrompt, sb.String())
	if err != nil {
		return nil, fmt.Errorf("%s error: %w", c.Provider(), err)
	}

	out, err := parseDecision(content)
	if err != nil {
		return nil, fmt.Errorf("%s decision: %w", c.Provider(), err)
	}
	return out, nil
}

func parseDecision(content string) (*DecisionOutput, error) {
	var out DecisionOutput
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &out); err != nil {
		return nil, fmt.Errorf("json parse error: %w | content: %s", err, content)
	}
	normalizeActionType(&out.Action)
	return &out, nil
}

// ExtractJSON strips markdown code fences that some models wrap around the
// JSON object despite the instructions.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, "json")

	if start := strings.Index(s, "{"); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndex(s, "}"); end >= 0 && end < len(s)-1 {
		s = s[:end+1]
	}
	return strings.TrimSpace(s)
}

func normalizeActionType(a *Action) {
	switch strings.ToLower(string(a.Type)) {
	case "click":
		a.Type = ActionClick
	case "type", "input", "fill":
		a.Type = ActionTypeInput
	case "navigate", "goto":
		a.Type = ActionNavigate
	case "scroll", "scroll_down":
		a.Type = ActionScroll
	case "finish", "done":
		a.Type = ActionFinish
	default:
		// A model inventing action types should be visible in the trace,
		// not silently scrolled past.
		logrus.WithField("component", "llm").
			WithField("action_type", string(a.Type)).
			Warn("unknown action type, falling back to scroll")
		a.Type = ActionScroll
	}
}
