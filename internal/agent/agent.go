package agent

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"browserlauncher/internal/browser"
	"browserlauncher/internal/llm"
)

// Agent binds one browser session to one LLM client for a single task run.
type Agent struct {
	driver browser.Driver
	llm    llm.Client
	log    *logrus.Entry
}

func New(d browser.Driver, c llm.Client) *Agent {
	return &Agent{
		driver: d,
		llm:    c,
		log:    logrus.WithField("component", "agent"),
	}
}

func (a *Agent) executeAction(action llm.Action) error {
	if action.Type == llm.ActionClick || action.Type == llm.ActionTypeInput {
		a.driver.Highlight(action.TargetID)
		time.Sleep(500 * time.Millisecond)
	}

	switch action.Type {
	case llm.ActionClick:
		fmt.Printf("Clicking [%d]...\n", action.TargetID)
		return a.driver.Click(action.TargetID)

	case llm.ActionTypeInput:
		fmt.Printf("Typing %q into [%d] (submit=%v)...\n", action.Text, action.TargetID, action.Submit)
		return a.driver.Fill(action.TargetID, action.Text, action.Submit)

	case llm.ActionNavigate:
		targetURL := normalizeURL(a.driver.URL(), action.URL)
		fmt.Printf("Navigating to %s...\n", targetURL)
		return a.driver.Goto(targetURL)

	case llm.ActionScroll:
		fmt.Println("Scrolling down...")
		return a.driver.ScrollDown()

	case llm.ActionFinish:
		return nil

	default:
		return fmt.Errorf("unknown action type: %s", action.Type)
	}
}
