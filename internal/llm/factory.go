package llm

import (
	"fmt"

	"browserlauncher/internal/provider"
)

// NewClient builds the chat client for the selected provider. The key must
// already have been validated as non-empty by provider selection.
func NewClient(p provider.Provider, apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", p, provider.ErrNoCredentials)
	}

	model := p.Info().DefaultModel

	switch p {
	case provider.OpenAI:
		return &client{backend: newOpenAIBackend(string(p), apiKey, "", model)}, nil
	case provider.Groq:
		return &client{backend: newOpenAIBackend(string(p), apiKey, groqBaseURL, model)}, nil
	case provider.Gemini, provider.Anthropic:
		b, err := newGollmBackend(string(p), apiKey, model)
		if err != nil {
			return nil, err
		}
		return &client{backend: b}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", p)
	}
}
