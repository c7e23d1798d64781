package browser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"browserlauncher/internal/config"
)

type playwrightDriver struct {
	pw      *playwright.Playwright
	context playwright.BrowserContext
	page    playwright.Page
	log     *logrus.Entry
}

func newPlaywrightDriver(cfg config.Config) (*playwrightDriver, error) {
	log := logrus.WithField("component", "browser").WithField("engine", "playwright")

	// Installs the driver and Chromium on first run; a no-op afterwards.
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("install playwright: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	cwd, _ := os.Getwd()
	userDataDir := filepath.Join(cwd, ".playwright_data")

	context, err := pw.Chromium.LaunchPersistentContext(
		userDataDir,
		playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless: playwright.Bool(cfg.Headless),
			SlowMo:   playwright.Float(float64(cfg.SlowMoMs)),
			Viewport: &playwright.Size{Width: 1280, Height: 720},
			Args: []string{
				"--disable-blink-features=AutomationControlled",
			},
		},
	)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			_ = context.Close()
			_ = pw.Stop()
			return nil, fmt.Errorf("create page: %w", err)
		}
	}

	page.SetDefaultTimeout(float64(cfg.TimeoutMs))
	page.SetDefaultNavigationTimeout(float64(cfg.TimeoutMs))

	log.Debug("browser session started")

	return &playwrightDriver{pw: pw, context: context, page: page, log: log}, nil
}

func (d *playwrightDriver) Goto(url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (d *playwrightDriver) Snapshot() (*Snapshot, error) {
	// Best effort: heavy pages may never reach networkidle.
	state := playwright.LoadStateNetworkidle
	_ = d.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: state})

	result, err := d.page.Evaluate(annotateScript)
	if err != nil {
		return nil, fmt.Errorf("js evaluation failed: %w", err)
	}

	tree, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("expected string from js, got %T", result)
	}

	title, _ := d.page.Title()

	return &Snapshot{
		URL:   d.page.URL(),
		Title: title,
		Tree:  tree,
	}, nil
}

func (d *playwrightDriver) Click(targetID int) error {
	selector := selectorFor(targetID)
	if err := d.page.Locator(selector).First().ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return d.page.Click(selector)
}

func (d *playwrightDriver) Fill(targetID int, text string, submit bool) error {
	selector := selectorFor(targetID)
	if err := d.page.Fill(selector, text); err != nil {
		return err
	}
	if submit {
		return d.page.Press(selector, "Enter")
	}
	return nil
}

func (d *playwrightDriver) ScrollDown() error {
	_, err := d.page.Evaluate(scrollDownScript)
	return err
}

func (d *playwrightDriver) Highlight(targetID int) {
	if _, err := d.page.Evaluate(highlightScript(selectorFor(targetID))); err != nil {
		d.log.WithError(err).Debug("highlight failed")
	}
}

func (d *playwrightDriver) URL() string { return d.page.URL() }

func (d *playwrightDriver) Close() error {
	if d.context != nil {
		_ = d.context.Close()
	}
	if d.pw != nil {
		return d.pw.Stop()
	}
	return nil
}
