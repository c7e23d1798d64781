// Package config reads the browser/runtime settings from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Engine selects the browser backend.
type Engine string

const (
	// EnginePlaywright drives a bundled Chromium through the Playwright driver.
	EnginePlaywright Engine = "playwright"
	// EngineChromedp drives a system Chromium over CDP, for environments
	// where the Playwright driver is unavailable (e.g. Termux).
	EngineChromedp Engine = "chromedp"
)

// Config mirrors the optional browser settings of the env file. All values
// are passed through to the browser/agent; absence or emptiness means "use
// the default".
type Config struct {
	Headless  bool   `env:"HEADLESS" envDefault:"false"`
	SlowMoMs  int    `env:"BROWSER_SLOW_MO" envDefault:"1000"`
	TimeoutMs int    `env:"BROWSER_TIMEOUT" envDefault:"60000"`
	Engine    Engine `env:"BROWSER_ENGINE" envDefault:"playwright"`
	MaxSteps  int    `env:"MAX_STEPS" envDefault:"15"`
}

var settingVars = []string{"HEADLESS", "BROWSER_SLOW_MO", "BROWSER_TIMEOUT", "BROWSER_ENGINE", "MAX_STEPS"}

// FromEnv parses the settings, treating empty values as unset. The shipped
// env template contains empty placeholder lines, so KEY= must behave exactly
// like a missing KEY.
func FromEnv() (Config, error) {
	for _, k := range settingVars {
		if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) == "" {
			os.Unsetenv(k)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if cfg.Engine != EnginePlaywright && cfg.Engine != EngineChromedp {
		cfg.Engine = EnginePlaywright
	}
	if cfg.SlowMoMs < 0 {
		cfg.SlowMoMs = 0
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 60000
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 15
	}
	return cfg, nil
}

func (c Config) SlowMo() time.Duration  { return time.Duration(c.SlowMoMs) * time.Millisecond }
func (c Config) Timeout() time.Duration { return time.Duration(c.TimeoutMs) * time.Millisecond }
