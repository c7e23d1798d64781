package agent

import (
	"fmt"
	"strings"

	"browserlauncher/internal/llm"
)

// StepMemory keeps a short history of executed steps and detects loops,
// both single repeated actions and repeating action patterns.
type StepMemory struct {
	lines    []string
	full     []string
	maxLines int

	lastActionKey string
	repeatCount   int
	loopThreshold int

	// pattern detection (e.g. "click-250 -> click-5" repeating)
	recentKeys    []string
	maxRecent     int
	patternLen    int
	patternCounts map[string]int

	loopTriggered bool
}

func NewStepMemory(maxLines, loopThreshold int) *StepMemory {
	if maxLines <= 0 {
		maxLines = 5
	}
	if loopThreshold <= 1 {
		loopThreshold = 2
	}
	return &StepMemory{
		maxLines:      maxLines,
		loopThreshold: loopThreshold,
		maxRecent:     10,
		patternLen:    2,
		patternCounts: make(map[string]int),
	}
}

// type + URL + target_id is enough to tell we keep pressing the same
// button on the same page.
func (m *StepMemory) makeKey(url string, action llm.Action) string {
	return fmt.Sprintf("%s|%s|%d", action.Type, url, action.TargetID)
}

// Add records a successfully executed action and updates the repeat and
// pattern counters.
func (m *StepMemory) Add(step int, url string, action llm.Action) {
	line := fmt.Sprintf(
		"step=%d url=%s action=%s target=%d text=%q",
		step, url, action.Type, action.TargetID, action.Text,
	)
	m.appendLine(line)

	key := m.makeKey(url, action)

	if key == m.lastActionKey {
		m.repeatCount++
	} else {
		m.lastActionKey = key
		m.repeatCount = 1
	}

	m.recentKeys = append(m.recentKeys, key)
	if len(m.recentKeys) > m.maxRecent {
		m.recentKeys = m.recentKeys[len(m.recentKeys)-m.maxRecent:]
	}

	if m.patternLen > 1 && len(m.recentKeys) >= m.patternLen {
		start := len(m.recentKeys) - m.patternLen
		pattern := strings.Join(m.recentKeys[start:], "->")
		m.patternCounts[pattern]++
	}
}

// ShouldBlock returns (true, reason) if executing the action would repeat a
// detected loop.
func (m *StepMemory) ShouldBlock(url string, action llm.Action) (bool, string) {
	key := m.makeKey(url, action)

	if m.loopThreshold > 0 && key == m.lastActionKey && m.repeatCount >= m.loopThreshold {
		reason := fmt.Sprintf(
			"SYSTEM NOTE: The same action (%s) has already been executed %d times in a row. "+
				"Do NOT repeat it again. Choose a different action or finish if the goal is already achieved.",
			key, m.repeatCount,
		)
		return true, reason
	}

	if m.patternLen > 1 && len(m.recentKeys) >= m.patternLen-1 {
		start := len(m.recentKeys) - (m.patternLen - 1)
		if start < 0 {
			start = 0
		}
		seq := append([]string{}, m.recentKeys[start:]...)
		seq = append(seq, key)

		if len(seq) == m.patternLen {
			pattern := strings.Join(seq, "->")
			if count, ok := m.patternCounts[pattern]; ok && count >= 1 {
				reason := fmt.Sprintf(
					"SYSTEM NOTE: The sequence of %d actions (%s) has already occurred before. "+
						"Do NOT repeat this pattern. Try a different action (for example, moving to the "+
						"next stage of the flow or finishing).",
					m.patternLen, pattern,
				)
				return true, reason
			}
		}
	}

	return false, ""
}

// AddSystemNote stores a note that will be shown to the LLM with the history.
func (m *StepMemory) AddSystemNote(note string) {
	if strings.TrimSpace(note) == "" {
		return
	}
	m.appendLine(note)
}

func (m *StepMemory) appendLine(line string) {
	m.full = append(m.full, line)
	m.lines = append(m.lines, line)
	if len(m.lines) > m.maxLines {
		m.lines = m.lines[len(m.lines)-m.maxLines:]
	}
}

// HistoryLines returns the recent window of steps and system notes.
func (m *StepMemory) HistoryLines() []string {
	if len(m.lines) == 0 {
		return nil
	}
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *StepMemory) HistoryString() string {
	lines := m.HistoryLines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

// FullHistory returns every recorded line, for the final report.
func (m *StepMemory) FullHistory() []string {
	out := make([]string, len(m.full))
	copy(out, m.full)
	return out
}

func (m *StepMemory) MarkLoopTriggered() {
	m.loopTriggered = true
}

func (m *StepMemory) LoopTriggered() bool {
	return m.loopTriggered
}
