// Package browser abstracts the two supported browser engines behind one
// driver interface: the Playwright-managed Chromium (default) and a system
// Chromium over CDP for environments without the Playwright driver.
package browser

import (
	"fmt"

	"browserlauncher/internal/config"
)

// Snapshot is the textual view of the current page handed to the LLM.
type Snapshot struct {
	URL   string
	Title string
	Tree  string
}

// Driver is the single browser-session handle owned by the in-flight task.
type Driver interface {
	Goto(url string) error
	Snapshot() (*Snapshot, error)
	Click(targetID int) error
	Fill(targetID int, text string, submit bool) error
	ScrollDown() error
	Highlight(targetID int)
	URL() string
	Close() error
}

// New starts the engine selected by configuration.
func New(cfg config.Config) (Driver, error) {
	switch cfg.Engine {
	case config.EngineChromedp:
		return newChromedpDriver(cfg)
	default:
		return newPlaywrightDriver(cfg)
	}
}

func selectorFor(targetID int) string {
	return fmt.Sprintf("[data-ai-id='%d']", targetID)
}
