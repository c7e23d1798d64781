package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint; the same backend serves
// both providers.
const groqBaseURL = "https://api.groq.com/openai/v1"

type openAIBackend struct {
	name   string
	client *openai.Client
	model  string
	log    *logrus.Entry
}

func newOpenAIBackend(name, apiKey, baseURL, model string) *openAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIBackend{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    logrus.WithField("component", "llm").WithField("provider", name),
	}
}

func (b *openAIBackend) Provider() string { return b.name }

func (b *openAIBackend) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	return b.complete(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
}

func (b *openAIBackend) CompleteText(ctx context.Context, system, user string) (string, error) {
	return b.complete(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
		MaxTokens:   600,
	})
}

func (b *openAIBackend) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	var resp openai.ChatCompletionResponse
	var err error

	for attempt := 0; attempt < 5; attempt++ {
		resp, err = b.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}

		// Rate limits back off; everything else surfaces immediately.
		if strings.Contains(err.Error(), "429") {
			wait := time.Duration(3*(1<<attempt)) * time.Second
			b.log.WithField("wait", wait).Warn("rate limited, backing off")
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return "", err
	}
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}
