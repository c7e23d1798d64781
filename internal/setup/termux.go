package setup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const termuxRoot = "/data/data/com.termux"

// IsTermux reports whether we are running inside Termux on Android, where
// the Playwright driver is unavailable and a system Chromium is used instead.
func IsTermux() bool {
	if _, err := os.Stat(termuxRoot); err == nil {
		return true
	}
	return os.Getenv("TERMUX_VERSION") != ""
}

// termuxPackages are installed through pkg before the chromedp engine can run.
var termuxPackages = []string{"x11-repo", "tur-repo", "chromium"}

// InstallTermuxPackages installs the Chromium dependency chain via pkg.
// Individual package failures are aggregated, not fatal.
func InstallTermuxPackages(ctx context.Context) error {
	if !IsTermux() {
		return fmt.Errorf("not a Termux environment")
	}

	var failed []string
	for _, pkg := range termuxPackages {
		fmt.Printf("  installing %s...\n", pkg)
		cmd := exec.CommandContext(ctx, "pkg", "install", pkg, "-y")
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			failed = append(failed, pkg)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to install: %s", strings.Join(failed, ", "))
	}
	return nil
}
