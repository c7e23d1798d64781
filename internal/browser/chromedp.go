package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/sirupsen/logrus"

	"browserlauncher/internal/config"
)

type chromedpDriver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	slowMo      time.Duration
	log         *logrus.Entry
}

// chromiumCandidates covers desktop installs plus the Termux prefix.
var chromiumCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
}

// ChromiumBinary locates a usable system Chromium, or returns "".
func ChromiumBinary() string {
	if p := os.Getenv("CHROME_BIN"); p != "" {
		return p
	}
	for _, name := range chromiumCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func newChromedpDriver(cfg config.Config) (*chromedpDriver, error) {
	log := logrus.WithField("component", "browser").WithField("engine", "chromedp")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1280, 720),
	)
	if bin := ChromiumBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	} else {
		return nil, fmt.Errorf("no system chromium found (set CHROME_BIN or run setup)")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Auto-dismiss JS dialogs so alert()/confirm() can never wedge the loop.
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if _, ok := ev.(*page.EventJavascriptDialogOpening); ok {
			go func() {
				if err := chromedp.Run(ctx, page.HandleJavaScriptDialog(true)); err != nil {
					log.WithError(err).Debug("dialog dismissal failed")
				}
			}()
		}
	})

	// Starts the browser process.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chromium: %w", err)
	}

	log.Debug("browser session started")

	return &chromedpDriver{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     cfg.Timeout(),
		slowMo:      cfg.SlowMo(),
		log:         log,
	}, nil
}

func (d *chromedpDriver) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()
	err := chromedp.Run(ctx, actions...)
	if d.slowMo > 0 {
		time.Sleep(d.slowMo)
	}
	return err
}

func (d *chromedpDriver) Goto(url string) error {
	return d.run(
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (d *chromedpDriver) Snapshot() (*Snapshot, error) {
	var snap Snapshot
	err := d.run(
		chromedp.Location(&snap.URL),
		chromedp.Title(&snap.Title),
		chromedp.Evaluate("("+annotateScript+")()", &snap.Tree),
	)
	if err != nil {
		return nil, fmt.Errorf("js evaluation failed: %w", err)
	}
	return &snap, nil
}

func (d *chromedpDriver) Click(targetID int) error {
	selector := selectorFor(targetID)
	return d.run(
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
}

func (d *chromedpDriver) Fill(targetID int, text string, submit bool) error {
	selector := selectorFor(targetID)
	actions := []chromedp.Action{
		chromedp.SetValue(selector, text, chromedp.ByQuery),
	}
	if submit {
		actions = append(actions, chromedp.SendKeys(selector, kb.Enter, chromedp.ByQuery))
	}
	return d.run(actions...)
}

func (d *chromedpDriver) ScrollDown() error {
	return d.run(chromedp.Evaluate(scrollDownScript, nil))
}

func (d *chromedpDriver) Highlight(targetID int) {
	if err := d.run(chromedp.Evaluate(highlightScript(selectorFor(targetID)), nil)); err != nil {
		d.log.WithError(err).Debug("highlight failed")
	}
}

func (d *chromedpDriver) URL() string {
	var url string
	if err := d.run(chromedp.Location(&url)); err != nil {
		return ""
	}
	return url
}

func (d *chromedpDriver) Close() error {
	d.cancel()
	d.allocCancel()
	return nil
}
