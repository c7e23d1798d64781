package provider

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Provider identifies one supported LLM API credential/client pairing.
type Provider string

const (
	Gemini    Provider = "gemini"
	Groq      Provider = "groq"
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
)

// Priority is the declared provider precedence. Selection walks this list
// in order and stops at the first provider with a non-empty secret.
var Priority = []Provider{Gemini, Groq, OpenAI, Anthropic}

// ErrNoCredentials is returned when no provider has a configured secret.
var ErrNoCredentials = errors.New("no LLM credentials configured")

// Info carries the static metadata for one provider.
type Info struct {
	EnvVar       string
	DisplayName  string
	DefaultModel string
	KeyURL       string
}

var infos = map[Provider]Info{
	Gemini: {
		EnvVar:       "GEMINI_API_KEY",
		DisplayName:  "Gemini (FREE)",
		DefaultModel: "gemini-1.5-flash",
		KeyURL:       "https://makersuite.google.com/app/apikey",
	},
	Groq: {
		EnvVar:       "GROQ_API_KEY",
		DisplayName:  "Groq (FREE)",
		DefaultModel: "mixtral-8x7b-32768",
		KeyURL:       "https://console.groq.com/",
	},
	OpenAI: {
		EnvVar:       "OPENAI_API_KEY",
		DisplayName:  "OpenAI GPT-4",
		DefaultModel: "gpt-4",
		KeyURL:       "https://platform.openai.com/api-keys",
	},
	Anthropic: {
		EnvVar:       "ANTHROPIC_API_KEY",
		DisplayName:  "Claude 3",
		DefaultModel: "claude-3-sonnet-20240229",
		KeyURL:       "https://console.anthropic.com/",
	},
}

func (p Provider) Info() Info { return infos[p] }

func (p Provider) String() string { return string(p) }

// Parse maps a user-typed provider name to a known Provider.
func Parse(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gemini", "google":
		return Gemini, nil
	case "groq":
		return Groq, nil
	case "openai", "gpt":
		return OpenAI, nil
	case "anthropic", "claude":
		return Anthropic, nil
	}
	return "", fmt.Errorf("unknown provider %q (supported: gemini, groq, openai, anthropic)", s)
}

// CredentialSet is the runtime view of which provider secrets are configured.
// It is built fresh from the process environment on every dispatch and never
// cached or mutated.
type CredentialSet map[Provider]string

// FromEnv reads the secret for every known provider from the environment.
// Absent and empty values both mean "not configured".
func FromEnv() CredentialSet {
	cs := make(CredentialSet, len(Priority))
	for _, p := range Priority {
		if v := strings.TrimSpace(os.Getenv(p.Info().EnvVar)); v != "" {
			cs[p] = v
		}
	}
	return cs
}

// Configured returns the providers with a non-empty secret, in priority order.
func (cs CredentialSet) Configured() []Provider {
	var out []Provider
	for _, p := range Priority {
		if cs[p] != "" {
			out = append(out, p)
		}
	}
	return out
}

// Select returns the active provider and its secret: the first entry of
// Priority with a non-empty secret. When nothing is configured it fails
// with ErrNoCredentials and no client may be constructed.
func (cs CredentialSet) Select() (Provider, string, error) {
	for _, p := range Priority {
		if key := cs[p]; key != "" {
			return p, key, nil
		}
	}
	return "", "", ErrNoCredentials
}
