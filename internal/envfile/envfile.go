// Package envfile manages the key=value credentials file at the project root.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPath is where the launcher looks for credentials.
const DefaultPath = ".env"

const defaultTemplate = `# Browser-Use API Configuration
# Get your FREE Gemini API key from: https://makersuite.google.com/app/apikey
GEMINI_API_KEY=
OPENAI_API_KEY=
ANTHROPIC_API_KEY=
GROQ_API_KEY=

# Browser Settings
HEADLESS=false
BROWSER_SLOW_MO=1000
BROWSER_TIMEOUT=60000
`

// Load reads the env file into the process environment, overriding any
// values already present so that edits to the file take effect on the next
// dispatch. A missing file is not an error.
func Load(path string) error {
	if err := godotenv.Overload(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// WriteDefault creates the template env file with empty API keys.
// It reports whether a new file was written; an existing file is left alone.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o600); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// SetKey updates one key in the env file. An existing KEY= line is replaced
// in place, leaving every other line untouched; a missing key is appended as
// exactly one new line.
func SetKey(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, []byte(key+"="+value+"\n"), 0o600)
		}
		return err
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			lines[i] = key + "=" + value
			replaced = true
			break
		}
	}

	if !replaced {
		// The final empty element is the artifact of a trailing newline;
		// reuse it so the append adds exactly one line.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines[n-1] = key + "=" + value
		} else {
			lines = append(lines, key+"="+value)
		}
		lines = append(lines, "")
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600)
}
