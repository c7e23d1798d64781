// Package setup performs the one-time environment preparation: browser
// install, credentials template, and configuration checks.
package setup

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"browserlauncher/internal/browser"
	"browserlauncher/internal/config"
	"browserlauncher/internal/envfile"
	"browserlauncher/internal/provider"
)

// Step is one setup action. Failures of non-fatal steps are recorded and
// reported at the end; a fatal step aborts the remaining steps.
type Step struct {
	Name  string
	Run   func(ctx context.Context) error
	Fatal bool
}

// Result records the outcome of one executed step.
type Result struct {
	Name string
	Err  error
}

// Runner executes setup steps in order.
type Runner struct {
	steps []Step
	log   *logrus.Entry
}

func NewRunner(steps []Step) *Runner {
	return &Runner{
		steps: steps,
		log:   logrus.WithField("component", "setup"),
	}
}

// Run executes every step, aggregating failures instead of stopping, except
// for fatal environment checks. Each outcome is printed as it happens.
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.steps))

	for _, step := range r.steps {
		fmt.Printf("▶ %s...\n", step.Name)
		err := step.Run(ctx)
		results = append(results, Result{Name: step.Name, Err: err})

		if err != nil {
			color.Red("❌ %s: %v", step.Name, err)
			r.log.WithError(err).WithField("step", step.Name).Error("setup step failed")
			if step.Fatal {
				color.Red("Aborting setup: %s is required.", step.Name)
				break
			}
			continue
		}
		color.Green("✅ %s", step.Name)
	}

	return results
}

// Failed counts the steps that reported an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// DefaultSteps is the standard setup sequence for the current platform.
func DefaultSteps(envPath string, cfg config.Config) []Step {
	steps := []Step{
		{
			Name:  "Check execution environment",
			Fatal: true,
			Run: func(ctx context.Context) error {
				if IsTermux() && cfg.Engine == config.EnginePlaywright {
					return fmt.Errorf("the Playwright driver does not run under Termux; set BROWSER_ENGINE=chromedp")
				}
				return nil
			},
		},
		{
			Name: "Write credentials template",
			Run: func(ctx context.Context) error {
				created, err := envfile.WriteDefault(envPath)
				if err != nil {
					return err
				}
				if created {
					fmt.Printf("  created %s — add your API key there\n", envPath)
				} else {
					fmt.Printf("  %s already exists\n", envPath)
				}
				return nil
			},
		},
	}

	if IsTermux() {
		steps = append(steps, Step{
			Name: "Install Termux packages",
			Run:  InstallTermuxPackages,
		})
	}

	steps = append(steps, Step{
		Name: "Install browser",
		Run: func(ctx context.Context) error {
			return installBrowser(cfg)
		},
	})

	steps = append(steps, Step{
		Name: "Check API credentials",
		Run: func(ctx context.Context) error {
			_ = envfile.Load(envPath)
			if _, _, err := provider.FromEnv().Select(); err != nil {
				return fmt.Errorf("%w — for free usage get a Gemini key: %s",
					err, provider.Gemini.Info().KeyURL)
			}
			return nil
		},
	})

	return steps
}

func installBrowser(cfg config.Config) error {
	if cfg.Engine == config.EngineChromedp {
		if bin := browser.ChromiumBinary(); bin != "" {
			fmt.Printf("  using system chromium: %s\n", bin)
			return nil
		}
		return fmt.Errorf("no system chromium found; install it with your package manager")
	}

	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("install playwright chromium: %w", err)
	}
	return nil
}
