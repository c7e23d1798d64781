package llm

import (
	"context"
	"fmt"

	"github.com/teilomillet/gollm"
)

// gollmBackend serves the providers go-openai cannot reach (Gemini, Claude)
// through the gollm multi-provider library.
type gollmBackend struct {
	name string
	llm  gollm.LLM
}

func newGollmBackend(name, apiKey, model string) (*gollmBackend, error) {
	l, err := gollm.NewLLM(
		gollm.SetProvider(name),
		gollm.SetModel(model),
		gollm.SetAPIKey(apiKey),
		gollm.SetMaxTokens(1024),
		gollm.SetTemperature(0),
		gollm.SetMaxRetries(0),
		gollm.SetLogLevel(gollm.LogLevelWarn),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", name, err)
	}
	return &gollmBackend{name: name, llm: l}, nil
}

func (b *gollmBackend) Provider() string { return b.name }

func (b *gollmBackend) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	// No structured-output mode here; the fence stripping in ExtractJSON
	// covers models that wrap the object anyway.
	prompt := gollm.NewPrompt(
		user+"\n\nRespond with a single JSON object and nothing else.",
		gollm.WithSystemPrompt(system, gollm.CacheTypeEphemeral),
	)
	return b.llm.Generate(ctx, prompt)
}

func (b *gollmBackend) CompleteText(ctx context.Context, system, user string) (string, error) {
	prompt := gollm.NewPrompt(user, gollm.WithSystemPrompt(system, gollm.CacheTypeEphemeral))
	return b.llm.Generate(ctx, prompt)
}
