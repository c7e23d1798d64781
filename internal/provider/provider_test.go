package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, p := range Priority {
		t.Setenv(p.Info().EnvVar, "")
	}
}

func TestPriorityOrderIsPinned(t *testing.T) {
	// Selection semantics depend on this exact order.
	assert.Equal(t, []Provider{Gemini, Groq, OpenAI, Anthropic}, Priority)
}

func TestSelectSingleConfiguredProvider(t *testing.T) {
	for _, p := range Priority {
		t.Run(string(p), func(t *testing.T) {
			cs := CredentialSet{p: "secret"}
			got, key, err := cs.Select()
			require.NoError(t, err)
			assert.Equal(t, p, got)
			assert.Equal(t, "secret", key)
		})
	}
}

func TestSelectPrefersHighestPriority(t *testing.T) {
	tests := []struct {
		name string
		cs   CredentialSet
		want Provider
	}{
		{
			name: "all configured picks gemini",
			cs:   CredentialSet{Gemini: "g", Groq: "q", OpenAI: "o", Anthropic: "a"},
			want: Gemini,
		},
		{
			name: "groq beats openai and anthropic",
			cs:   CredentialSet{Groq: "q", OpenAI: "o", Anthropic: "a"},
			want: Groq,
		},
		{
			name: "openai beats anthropic",
			cs:   CredentialSet{OpenAI: "o", Anthropic: "a"},
			want: OpenAI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := tt.cs.Select()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectEmptyFails(t *testing.T) {
	_, _, err := CredentialSet{}.Select()
	assert.ErrorIs(t, err, ErrNoCredentials)

	// Empty strings count as not configured.
	_, _, err = CredentialSet{Gemini: "", OpenAI: ""}.Select()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("OPENAI_API_KEY", "  ") // whitespace is not a credential

	cs := FromEnv()
	assert.Equal(t, CredentialSet{Groq: "gsk-test"}, cs)

	p, key, err := cs.Select()
	require.NoError(t, err)
	assert.Equal(t, Groq, p)
	assert.Equal(t, "gsk-test", key)
}

func TestFromEnvReadsFreshEachCall(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "first")
	assert.Equal(t, "first", FromEnv()[Anthropic])

	t.Setenv("ANTHROPIC_API_KEY", "second")
	assert.Equal(t, "second", FromEnv()[Anthropic])
}

func TestConfigured(t *testing.T) {
	cs := CredentialSet{Anthropic: "a", Gemini: "g"}
	assert.Equal(t, []Provider{Gemini, Anthropic}, cs.Configured())
	assert.Empty(t, CredentialSet{}.Configured())
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Provider{
		"gemini": Gemini, "google": Gemini,
		"groq":   Groq,
		"openai": OpenAI, "GPT": OpenAI,
		"Claude": Anthropic, "anthropic": Anthropic,
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("mistral")
	assert.Error(t, err)
}

func TestInfoComplete(t *testing.T) {
	for _, p := range Priority {
		info := p.Info()
		assert.NotEmpty(t, info.EnvVar, p)
		assert.NotEmpty(t, info.DisplayName, p)
		assert.NotEmpty(t, info.DefaultModel, p)
		assert.NotEmpty(t, info.KeyURL, p)
	}
}
