package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenu(t *testing.T, input string) (*Menu, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	envPath := filepath.Join(t.TempDir(), ".env")
	return NewMenu(strings.NewReader(input), out, envPath), out
}

func TestMenuExit(t *testing.T) {
	menu, out := newTestMenu(t, "6\n")
	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye")
}

func TestMenuInvalidChoiceThenExit(t *testing.T) {
	menu, out := newTestMenu(t, "9\n6\n")
	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestMenuShowsDocs(t *testing.T) {
	menu, out := newTestMenu(t, "5\n6\n")
	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "makersuite.google.com")
	assert.Contains(t, out.String(), "console.groq.com")
}

func TestMenuKeySetupSavesKey(t *testing.T) {
	menu, out := newTestMenu(t, "3\ny\ngemini\ntest-key-123\n6\n")
	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "API Key Setup")

	data, err := os.ReadFile(menu.envPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GEMINI_API_KEY=test-key-123")
}

func TestMenuEOFExitsCleanly(t *testing.T) {
	menu, out := newTestMenu(t, "")
	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye")
}

func TestRunTaskRejectsEmptyTask(t *testing.T) {
	_, err := RunTask(context.Background(), "   ", "", filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}

func TestRunTaskFailsWithoutCredentials(t *testing.T) {
	// No keys configured: selection must fail before any browser or agent
	// construction happens.
	for _, v := range []string{"GEMINI_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(v, "")
	}

	_, err := RunTask(context.Background(), "do something", "", filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no LLM credentials configured")
}

func TestPredefinedTasksPresent(t *testing.T) {
	assert.Len(t, predefinedTasks, 5)
}

func TestPrepareTask(t *testing.T) {
	framed := prepareTask("find the login button", "https://example.com/shop")
	assert.Contains(t, framed, "example.com")
	assert.Contains(t, framed, "User task: find the login button")

	// Without a start page the task passes through untouched.
	assert.Equal(t, "plain task", prepareTask("plain task", ""))
}
