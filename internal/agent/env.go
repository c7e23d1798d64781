package agent

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildTaskWithEnvironment frames the user task with the start domain and
// path so the agent stays on the site it was pointed at.
func BuildTaskWithEnvironment(rawTask, startURL string) string {
	u, err := url.Parse(startURL)
	if err != nil || u.Host == "" {
		return rawTask
	}

	host := strings.ToLower(u.Host)
	path := strings.TrimRight(u.Path, "/")

	var pathNote string
	if path != "" && path != "/" {
		pathNote = fmt.Sprintf(`
Initial path on the site: %s.
Where possible, stay inside the section whose URL starts with this path.
Do not move to other top-level sections of the site unless the user
explicitly asked for it, especially via the global header menu.`,
			path,
		)
	}

	return fmt.Sprintf(
		`You are working on the site %s.
Starting page: %s.%s

Do not leave this domain and do not open external search engines.
User task: %s`,
		host, startURL, pathNote, rawTask,
	)
}

func normalizeURL(currentURL, target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return currentURL
	}

	u, err := url.Parse(target)
	if err == nil && u.IsAbs() {
		return target
	}

	base, err := url.Parse(currentURL)
	if err != nil {
		return target
	}

	return base.ResolveReference(u).String()
}
