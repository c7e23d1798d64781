package llm

import "context"

type ActionType string

const (
	ActionClick     ActionType = "click"
	ActionNavigate  ActionType = "navigate"
	ActionTypeInput ActionType = "type"
	ActionScroll    ActionType = "scroll_down"
	ActionFinish    ActionType = "finish"
)

type Action struct {
	Type          ActionType `json:"type"`
	TargetID      int        `json:"target_id,omitempty"`
	Text          string     `json:"text,omitempty"`
	URL           string     `json:"url,omitempty"`
	Submit        bool       `json:"submit,omitempty"`
	IsDestructive bool       `json:"is_destructive,omitempty"`
}

type DecisionInput struct {
	Task        string
	DOMTree     string
	CurrentURL  string
	History     string // short description of previous steps
	PlanContext string // high-level plan, if one was built
}

type DecisionOutput struct {
	CurrentPhase string `json:"current_phase"`
	Observation  string `json:"observation"`
	Thought      string `json:"thought"`
	StepDone     bool   `json:"step_done"`
	Action       Action `json:"action"`
}

type SummaryInput struct {
	Task       string
	ExitReason string
	FinalURL   string
	Duration   string
	Steps      []string
}

// Client is what the agent and planner see of the selected provider.
type Client interface {
	Provider() string

	// CompleteJSON asks the model for a single JSON object response.
	CompleteJSON(ctx context.Context, system, user string) (string, error)

	// CompleteText asks the model for a free-form text response.
	CompleteText(ctx context.Context, system, user string) (string, error)

	DecideAction(ctx context.Context, in DecisionInput) (*DecisionOutput, error)
	SummarizeRun(ctx context.Context, in SummaryInput) (string, error)
}
