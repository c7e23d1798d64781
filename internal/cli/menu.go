package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// predefinedTasks mirrors the stock demo tasks offered by the menu.
var predefinedTasks = []string{
	"Go to Google and search for 'browser automation'",
	"Visit GitHub.com, search for 'browser-use' and get the star count",
	"Go to news.ycombinator.com and get the titles of top 5 articles",
	"Visit example.com and extract all the text content",
	"Go to httpbin.org/json and extract the JSON data",
}

// Menu is the interactive launcher surface. All I/O goes through the
// injected reader/writer so the flow is testable.
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	envPath string
}

func NewMenu(in io.Reader, out io.Writer, envPath string) *Menu {
	return &Menu{
		in:      bufio.NewReader(in),
		out:     out,
		envPath: envPath,
	}
}

// Run shows the main menu until the user exits. A failed task run prints
// the error and returns to the menu; it never terminates the process.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMainMenu()

		choice, err := m.readLine("\nChoose option (1-6): ")
		if err != nil {
			// Exhausted input is a normal way to leave the menu, not a failure.
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out, "\n👋 Goodbye!")
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			m.runPredefined(ctx)
		case "2":
			m.interactiveMode(ctx)
		case "3":
			m.setupKeys()
		case "4":
			m.selfTest()
		case "5":
			m.showDocs()
		case "6":
			fmt.Fprintln(m.out, "👋 Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice, please try again.")
		}
	}
}

func (m *Menu) printMainMenu() {
	fmt.Fprintln(m.out, "\n🤖 Browser Automation Launcher")
	fmt.Fprintln(m.out, strings.Repeat("=", 40))
	fmt.Fprintln(m.out, "1. Run predefined tasks")
	fmt.Fprintln(m.out, "2. Interactive mode")
	fmt.Fprintln(m.out, "3. Setup/check API keys")
	fmt.Fprintln(m.out, "4. Test installation")
	fmt.Fprintln(m.out, "5. View documentation")
	fmt.Fprintln(m.out, "6. Exit")
}

func (m *Menu) runPredefined(ctx context.Context) {
	fmt.Fprintln(m.out, "🎯 Predefined Tasks:")
	for i, task := range predefinedTasks {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, task)
	}

	choice, err := m.readLine(fmt.Sprintf("\nSelect task (1-%d) or 'c' for custom: ", len(predefinedTasks)))
	if err != nil {
		return
	}

	var task string
	switch {
	case strings.EqualFold(choice, "c"):
		task, err = m.readLine("Enter your custom task: ")
		if err != nil {
			return
		}
	default:
		idx := 0
		if _, err := fmt.Sscanf(choice, "%d", &idx); err != nil || idx < 1 || idx > len(predefinedTasks) {
			fmt.Fprintln(m.out, "Invalid choice")
			return
		}
		task = predefinedTasks[idx-1]
	}

	m.dispatch(ctx, task)
}

func (m *Menu) interactiveMode(ctx context.Context) {
	fmt.Fprintln(m.out, "🎮 Interactive Browser Automation")
	fmt.Fprintln(m.out, "Type your automation tasks, or 'quit' to exit")

	for {
		task, err := m.readLine("\n🤖 What would you like to automate? ")
		if err != nil {
			return
		}

		switch strings.ToLower(task) {
		case "quit", "exit", "q":
			return
		case "":
			continue
		}

		m.dispatch(ctx, task)
	}
}

// dispatch runs one task and surfaces the outcome without leaving the menu.
func (m *Menu) dispatch(ctx context.Context, task string) {
	result, err := RunTask(ctx, task, "", m.envPath)
	if err != nil {
		color.Red("❌ Task failed: %v", err)
		if result != "" {
			fmt.Fprintf(m.out, "Partial result: %s\n", result)
		}
		return
	}
	color.Green("✅ Task completed!")
	fmt.Fprintf(m.out, "Result: %s\n", result)
}

func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
