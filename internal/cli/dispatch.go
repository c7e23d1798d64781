// Package cli implements the interactive menu and the single-task dispatch
// pipeline around the browser agent.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"browserlauncher/internal/agent"
	"browserlauncher/internal/browser"
	"browserlauncher/internal/config"
	"browserlauncher/internal/envfile"
	"browserlauncher/internal/llm"
	"browserlauncher/internal/planner"
	"browserlauncher/internal/provider"
)

// RunTask performs one full dispatch: read credentials fresh, select the
// provider, construct one agent bound to the task, and await its single run.
// There is no retry; the result text is returned for display as-is.
// A non-empty startURL is opened before the loop starts and the task is
// framed to keep the agent on that site.
func RunTask(ctx context.Context, task, startURL, envPath string) (string, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return "", fmt.Errorf("empty task — nothing to do")
	}
	task = prepareTask(task, startURL)

	// Credentials are re-read on every dispatch so .env edits take effect
	// without a restart.
	if err := envfile.Load(envPath); err != nil {
		return "", err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return "", fmt.Errorf("read settings: %w", err)
	}

	p, key, err := provider.FromEnv().Select()
	if err != nil {
		return "", fmt.Errorf("%w — edit %s to add a key (free Gemini key: %s)",
			err, envPath, provider.Gemini.Info().KeyURL)
	}

	client, err := llm.NewClient(p, key)
	if err != nil {
		return "", err
	}

	color.Green("🤖 Using %s", p.Info().DisplayName)

	driver, err := browser.New(cfg)
	if err != nil {
		return "", fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			logrus.WithError(err).Warn("browser close failed")
		}
	}()

	if startURL != "" {
		if err := driver.Goto(startURL); err != nil {
			return "", fmt.Errorf("open start page: %w", err)
		}
	}

	// A plan is nice to have, not required.
	plan, err := planner.BuildPlan(ctx, client, task)
	if err != nil {
		logrus.WithError(err).Warn("planning failed, continuing without a plan")
		plan = nil
	} else {
		fmt.Println("📋 PLAN:")
		fmt.Println(plan.Context())
	}

	color.Cyan("🚀 Running task: %s", task)

	runner := agent.NewRunner(agent.New(driver, client), task, cfg.MaxSteps).WithPlan(plan)
	return runner.Run(ctx)
}

// prepareTask frames the task with the start page's domain so the agent
// stays on the site it was pointed at. Without a start page the task is
// passed through untouched.
func prepareTask(task, startURL string) string {
	if startURL == "" {
		return task
	}
	return agent.BuildTaskWithEnvironment(task, startURL)
}
