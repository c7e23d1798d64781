package agent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"browserlauncher/internal/llm"
)

func clickAction(target int) llm.Action {
	return llm.Action{Type: llm.ActionClick, TargetID: target}
}

func TestShouldBlockRepeatedAction(t *testing.T) {
	mem := NewStepMemory(10, 2)
	url := "https://example.com"

	for step := 1; step <= 2; step++ {
		blocked, _ := mem.ShouldBlock(url, clickAction(5))
		assert.False(t, blocked, "step %d", step)
		mem.Add(step, url, clickAction(5))
	}

	blocked, reason := mem.ShouldBlock(url, clickAction(5))
	assert.True(t, blocked)
	assert.Contains(t, reason, "Do NOT repeat it again")
	assert.False(t, mem.LoopTriggered())

	mem.MarkLoopTriggered()
	assert.True(t, mem.LoopTriggered())
}

func TestShouldBlockDistinguishesPages(t *testing.T) {
	mem := NewStepMemory(10, 3)

	// Same target on different pages is not a loop.
	for step := 1; step <= 5; step++ {
		url := fmt.Sprintf("https://example.com/page/%d", step)
		blocked, _ := mem.ShouldBlock(url, clickAction(1))
		assert.False(t, blocked)
		mem.Add(step, url, clickAction(1))
	}
}

func TestShouldBlockRepeatingPattern(t *testing.T) {
	mem := NewStepMemory(10, 5)
	url := "https://example.com"

	// A -> B once is fine.
	mem.Add(1, url, clickAction(250))
	mem.Add(2, url, clickAction(5))
	// Starting the same A -> B sequence again gets blocked at B.
	mem.Add(3, url, clickAction(250))

	blocked, reason := mem.ShouldBlock(url, clickAction(5))
	assert.True(t, blocked)
	assert.Contains(t, reason, "Do NOT repeat this pattern")
}

func TestHistoryWindowAndFullHistory(t *testing.T) {
	mem := NewStepMemory(3, 3)
	url := "https://example.com"

	for step := 1; step <= 6; step++ {
		mem.Add(step, url, clickAction(step))
	}

	assert.Len(t, mem.HistoryLines(), 3)
	assert.Len(t, mem.FullHistory(), 6)
	assert.Contains(t, mem.HistoryString(), "step=6")
	assert.NotContains(t, mem.HistoryString(), "step=1")
}

func TestAddSystemNote(t *testing.T) {
	mem := NewStepMemory(5, 3)
	mem.AddSystemNote("SYSTEM ALERT: something")
	mem.AddSystemNote("   ")

	assert.Equal(t, []string{"SYSTEM ALERT: something"}, mem.HistoryLines())
}
