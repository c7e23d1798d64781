package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"browserlauncher/internal/browser"
	"browserlauncher/internal/config"
	"browserlauncher/internal/envfile"
	"browserlauncher/internal/provider"
)

// setupKeys reports the configured providers and offers to store a key in
// the env file. Existing key lines are replaced in place.
func (m *Menu) setupKeys() {
	fmt.Fprintln(m.out, "🔑 API Key Setup...")

	if created, err := envfile.WriteDefault(m.envPath); err != nil {
		color.Red("❌ Could not create %s: %v", m.envPath, err)
		return
	} else if created {
		fmt.Fprintf(m.out, "Created %s\n", m.envPath)
	}

	_ = envfile.Load(m.envPath)

	if configured := provider.FromEnv().Configured(); len(configured) > 0 {
		names := make([]string, len(configured))
		for i, p := range configured {
			names[i] = p.Info().EnvVar
		}
		color.Green("✅ Found API keys: %v", names)
	} else {
		color.Red("❌ No API keys found!")
		fmt.Fprintln(m.out, "\n🆓 For FREE unlimited usage, get a Gemini API key:")
		fmt.Fprintln(m.out, provider.Gemini.Info().KeyURL)
		fmt.Fprintf(m.out, "\nAfter getting your key, add it to the .env file:\nEdit: %s\n", m.envPath)
	}

	answer, err := m.readLine("\nWould you like to add an API key now? (y/n): ")
	if err != nil || answer != "y" {
		return
	}

	name, err := m.readLine("Choose provider (gemini/openai/anthropic/groq): ")
	if err != nil {
		return
	}
	p, err := provider.Parse(name)
	if err != nil {
		fmt.Fprintln(m.out, err)
		return
	}

	key, err := m.readLine(fmt.Sprintf("Enter your %s API key: ", p.Info().EnvVar))
	if err != nil || key == "" {
		return
	}

	if err := envfile.SetKey(m.envPath, p.Info().EnvVar, key); err != nil {
		color.Red("❌ Failed to save key: %v", err)
		return
	}
	color.Green("✅ %s API key saved!", p.Info().EnvVar)
}

// selfTest checks the installation pieces one by one, never stopping at the
// first failure.
func (m *Menu) selfTest() {
	fmt.Fprintln(m.out, "🧪 Running tests...")

	_ = envfile.Load(m.envPath)
	cfg, cfgErr := config.FromEnv()

	checks := []struct {
		name string
		ok   func() bool
	}{
		{"Environment file", func() bool {
			_, err := os.Stat(m.envPath)
			return err == nil
		}},
		{"Settings", func() bool { return cfgErr == nil }},
		{"API credentials", func() bool {
			_, _, err := provider.FromEnv().Select()
			return err == nil
		}},
		{"Browser binary", func() bool {
			if cfg.Engine == config.EngineChromedp {
				return browser.ChromiumBinary() != ""
			}
			// The Playwright driver installs its own Chromium on demand.
			return true
		}},
	}

	for _, check := range checks {
		if check.ok() {
			color.Green("✅ %s", check.name)
		} else {
			color.Red("❌ %s", check.name)
		}
	}
}

func (m *Menu) showDocs() {
	fmt.Fprintln(m.out, "\n📚 Documentation & Resources")
	fmt.Fprintln(m.out, "========================================")
	fmt.Fprintln(m.out, "• Free Gemini API: "+provider.Gemini.Info().KeyURL)
	fmt.Fprintln(m.out, "• Free Groq API: "+provider.Groq.Info().KeyURL)
	fmt.Fprintln(m.out, "• OpenAI keys: "+provider.OpenAI.Info().KeyURL)
	fmt.Fprintln(m.out, "• Anthropic keys: "+provider.Anthropic.Info().KeyURL)
	fmt.Fprintln(m.out, "• Playwright for Go: https://github.com/playwright-community/playwright-go")
}
